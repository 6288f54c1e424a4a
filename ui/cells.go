// Package ui provides the terminal widgets for playing and replaying
// isolation games.
package ui

import (
	"github.com/gdamore/tcell/v2"

	"isolation-viz/config"
	"isolation-viz/engine"
	"isolation-viz/types"
)

// Palette maps cell tokens to colors.
type Palette struct {
	player1     tcell.Color
	player2     tcell.Color
	player1Hint tcell.Color
	player2Hint tcell.Color
	blocked     tcell.Color
	forcefield  tcell.Color
	empty       tcell.Color
	Text        tcell.Color
	Cursor      tcell.Color
	Selected    tcell.Color
}

// NewPalette builds a palette from the theme colors of c.
func NewPalette(c *config.Config) Palette {
	col := c.Theme.Colors
	return Palette{
		player1:     tcell.GetColor(col.Player1),
		player2:     tcell.GetColor(col.Player2),
		player1Hint: tcell.GetColor(col.Player1Hint),
		player2Hint: tcell.GetColor(col.Player2Hint),
		blocked:     tcell.GetColor(col.Blocked),
		forcefield:  tcell.GetColor(col.Forcefield),
		empty:       tcell.GetColor(col.Empty),
		Text:        tcell.GetColor(col.Text),
		Cursor:      tcell.GetColor(col.Cursor),
		Selected:    tcell.GetColor(col.Selected),
	}
}

// DefaultPalette uses the default theme.
func DefaultPalette() Palette {
	return NewPalette(&config.DefaultConfig)
}

// CellDetails returns the label and background color for a cell token.
// Piece cells keep their name; highlight, blocked, forcefield and empty
// cells are drawn without a label.
func (p Palette) CellDetails(token string) (string, tcell.Color) {
	switch token {
	case types.Queen1, types.Knight1:
		return token, p.player1
	case types.Queen2, types.Knight2:
		return token, p.player2
	case types.QueenHint1, types.KnightHint1:
		return " ", p.player1Hint
	case types.QueenHint2, types.KnightHint2:
		return " ", p.player2Hint
	case types.Blocked:
		return token, p.blocked
	case types.Forcefield:
		return " ", p.forcefield
	}
	return token, p.empty
}

// CellDetails resolves a token with the default palette.
func CellDetails(token string) (string, tcell.Color) {
	return DefaultPalette().CellDetails(token)
}

// VizState returns the board state to draw. With showLegalMoves every legal
// move of the active player that does not hold a piece is marked q1 or q2.
func VizState(b engine.Board, showLegalMoves bool) types.BoardState {
	state := b.State()
	if !showLegalMoves {
		return state
	}
	marker := types.QueenHint2
	if b.ActivePlayer() == b.Player1() {
		marker = types.QueenHint1
	}
	for _, m := range b.ActiveMoves() {
		if !m.In(state.Width(), state.Height()) || types.IsPiece(state[m.Row][m.Col]) {
			continue
		}
		state[m.Row][m.Col] = marker
	}
	return state
}
