// Package types contains shared data structures for isolation-viz.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cell tokens as they appear in a BoardState.
const (
	Empty      = " "
	Blocked    = "X"
	Forcefield = "O"

	Queen1  = "Q1"
	Queen2  = "Q2"
	Knight1 = "K1"
	Knight2 = "K2"

	// Legal-move highlights. Only produced for display, never by a board.
	QueenHint1  = "q1"
	QueenHint2  = "q2"
	KnightHint1 = "k1"
	KnightHint2 = "k2"
)

// Move is a board coordinate. Row 0 is the top row, Col 0 the left column.
type Move struct {
	Row int
	Col int
}

// NoMove is returned alongside errors where a Move is required.
var NoMove = Move{Row: -1, Col: -1}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// In reports whether m lies on a width x height board.
func (m Move) In(width, height int) bool {
	return m.Row >= 0 && m.Col >= 0 && m.Row < height && m.Col < width
}

// MarshalJSON encodes a Move as a [row, col] array.
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{m.Row, m.Col})
}

// UnmarshalJSON allows Move to be unmarshaled from a JSON array [row, col].
func (m *Move) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("move must have 2 coordinates, got %d", len(v))
	}
	m.Row, m.Col = v[0], v[1]
	return nil
}

// MovePair is one round of play: player 1's move followed by player 2's.
// The last pair of an unfinished or odd-length game may hold a single move.
type MovePair []Move

// BoardState is a grid of cell tokens indexed as State[row][col].
type BoardState [][]string

// NewBoardState creates an empty width x height state.
func NewBoardState(width, height int) BoardState {
	s := make(BoardState, height)
	for r := range s {
		s[r] = make([]string, width)
		for c := range s[r] {
			s[r][c] = Empty
		}
	}
	return s
}

// Height returns the number of rows.
func (s BoardState) Height() int {
	return len(s)
}

// Width returns the number of columns.
func (s BoardState) Width() int {
	if s.Height() == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy.
func (s BoardState) Clone() BoardState {
	if s == nil {
		return nil
	}
	c := make(BoardState, len(s))
	for r := range s {
		c[r] = append([]string(nil), s[r]...)
	}
	return c
}

// Equal compares two states cell by cell.
func (s BoardState) Equal(o BoardState) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the state one row per line, e.g. ['Q1', ' ', 'X'].
func (s BoardState) String() string {
	var b strings.Builder
	b.WriteString("[")
	for r, row := range s {
		if r > 0 {
			b.WriteString(",\n ")
		}
		b.WriteString("[")
		for c, cell := range row {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString("'" + cell + "'")
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}

// IsPiece reports whether the token is a player's piece (Q1, K2, ...).
func IsPiece(token string) bool {
	return len(token) >= 2 && (token[0] == 'Q' || token[0] == 'K')
}
