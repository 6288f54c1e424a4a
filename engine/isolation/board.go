// Package isolation is a reference implementation of the trail isolation
// rules so the front-end can be played and tested without an outside board.
//
// Each player owns one piece. A player's first move places the piece on any
// empty cell. Afterwards queens slide any distance in the eight directions
// and knights jump in L-shapes, never onto or across a non-empty cell. The
// cell a piece leaves is blocked for the rest of the game. The cells a queen
// slides over become a forcefield that blocks the opponent and stays on the
// board until its owner moves again.
// A player without a legal move on their turn loses.
package isolation

import (
	"fmt"
	"strings"

	"isolation-viz/engine"
	"isolation-viz/types"
)

// PieceKind selects how pieces move.
type PieceKind int

const (
	Queen PieceKind = iota
	Knight
)

func (k PieceKind) String() string {
	if k == Knight {
		return "knight"
	}
	return "queen"
}

// ParsePieceKind accepts "queen" or "knight" (case-insensitive, also "q"/"k").
func ParsePieceKind(s string) (PieceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "queen", "q":
		return Queen, nil
	case "knight", "k":
		return Knight, nil
	}
	return Queen, fmt.Errorf("unknown piece kind %q", s)
}

var queenDirs = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

var knightJumps = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}

// Board implements engine.Board.
type Board struct {
	width  int
	height int
	kind   PieceKind

	players [2]engine.Player
	cells   types.BoardState
	pos     [2]types.Move
	trail   [2][]types.Move
	active  int

	history []types.Move
	over    bool
	winner  engine.Player
}

// Option configures a new Board.
type Option func(*Board)

// WithSize sets the board dimensions.
func WithSize(width, height int) Option {
	return func(b *Board) {
		b.width = width
		b.height = height
	}
}

// WithPieceKind sets how both players' pieces move.
func WithPieceKind(k PieceKind) Option {
	return func(b *Board) {
		b.kind = k
	}
}

// NewBoard creates an empty 7x7 queen board unless options say otherwise.
// Player 1 moves first.
func NewBoard(p1, p2 engine.Player, opts ...Option) *Board {
	b := &Board{
		width:   7,
		height:  7,
		kind:    Queen,
		players: [2]engine.Player{p1, p2},
		pos:     [2]types.Move{types.NoMove, types.NoMove},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.cells = types.NewBoardState(b.width, b.height)
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) State() types.BoardState {
	return b.cells.Clone()
}

func (b *Board) Player1() engine.Player { return b.players[0] }
func (b *Board) Player2() engine.Player { return b.players[1] }

func (b *Board) ActivePlayer() engine.Player   { return b.players[b.active] }
func (b *Board) InactivePlayer() engine.Player { return b.players[1-b.active] }

func (b *Board) ActiveMoves() []types.Move {
	return b.movesFor(b.active)
}

// InactiveMoves returns the moves the waiting player would have if it were
// their turn on the current grid.
func (b *Board) InactiveMoves() []types.Move {
	return b.movesFor(1 - b.active)
}

func (b *Board) movesFor(i int) []types.Move {
	var moves []types.Move
	from := b.pos[i]
	if from == types.NoMove {
		for r := 0; r < b.height; r++ {
			for c := 0; c < b.width; c++ {
				if b.cells[r][c] == types.Empty {
					moves = append(moves, types.Move{Row: r, Col: c})
				}
			}
		}
		return moves
	}

	if b.kind == Knight {
		for _, j := range knightJumps {
			to := types.Move{Row: from.Row + j[0], Col: from.Col + j[1]}
			if b.open(i, to) {
				moves = append(moves, to)
			}
		}
		return moves
	}

	for _, d := range queenDirs {
		to := types.Move{Row: from.Row + d[0], Col: from.Col + d[1]}
		for b.open(i, to) {
			moves = append(moves, to)
			to = types.Move{Row: to.Row + d[0], Col: to.Col + d[1]}
		}
	}
	return moves
}

// open reports whether player i may land on or pass through m. A player's
// own forcefield never blocks them.
func (b *Board) open(i int, m types.Move) bool {
	if !m.In(b.width, b.height) {
		return false
	}
	switch b.cells[m.Row][m.Col] {
	case types.Empty:
		return true
	case types.Forcefield:
		return engine.Contains(b.trail[i], m)
	}
	return false
}

func (b *Board) ApplyMove(m types.Move) (bool, engine.Player) {
	if b.over {
		return true, b.winner
	}
	me, other := b.active, 1-b.active
	b.clearTrail(me)

	if !engine.Contains(b.movesFor(me), m) {
		b.over = true
		b.winner = b.players[other]
		return true, b.winner
	}

	from := b.pos[me]
	if from != types.NoMove {
		b.cells[from.Row][from.Col] = types.Blocked
		if b.kind == Queen {
			b.layTrail(me, from, m)
		}
	}
	b.cells[m.Row][m.Col] = b.token(me)
	b.pos[me] = m
	b.history = append(b.history, m)

	b.active = other
	if len(b.movesFor(other)) == 0 {
		b.over = true
		b.winner = b.players[me]
	}
	return b.over, b.winner
}

// layTrail marks the cells strictly between from and to.
func (b *Board) layTrail(i int, from, to types.Move) {
	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	cur := types.Move{Row: from.Row + dr, Col: from.Col + dc}
	for cur != to {
		b.cells[cur.Row][cur.Col] = types.Forcefield
		b.trail[i] = append(b.trail[i], cur)
		cur = types.Move{Row: cur.Row + dr, Col: cur.Col + dc}
	}
}

func (b *Board) clearTrail(i int) {
	for _, t := range b.trail[i] {
		if b.cells[t.Row][t.Col] == types.Forcefield {
			b.cells[t.Row][t.Col] = types.Empty
		}
	}
	b.trail[i] = nil
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func (b *Board) token(i int) string {
	if b.kind == Knight {
		return fmt.Sprintf("K%d", i+1)
	}
	return fmt.Sprintf("Q%d", i+1)
}

func (b *Board) Pieces(p engine.Player) []string {
	for i, pl := range b.players {
		if pl == p {
			return []string{b.token(i)}
		}
	}
	return nil
}

func (b *Board) History() []types.Move {
	return append([]types.Move(nil), b.history...)
}

func (b *Board) MoveCount() int {
	return len(b.history)
}

// IsOver reports whether the game has ended, and who won.
func (b *Board) IsOver() (bool, engine.Player) {
	return b.over, b.winner
}

func (b *Board) Copy() engine.Board {
	c := *b
	c.cells = b.cells.Clone()
	c.history = append([]types.Move(nil), b.history...)
	for i := range b.trail {
		c.trail[i] = append([]types.Move(nil), b.trail[i]...)
	}
	return &c
}

func (b *Board) Fresh() engine.Board {
	return NewBoard(b.players[0], b.players[1], WithSize(b.width, b.height), WithPieceKind(b.kind))
}
