package ui

import (
	"isolation-viz/engine"
	"isolation-viz/types"
)

// fakeBoard gives each player several pieces. Every empty cell is legal and
// a move turns its cell into "X". The game ends after endAfter moves.
type fakeBoard struct {
	width, height int
	players       [2]engine.Player
	pieces        [2][]string
	endAfter      int

	cells   types.BoardState
	active  int
	history []types.Move
	over    bool
	winner  engine.Player
}

func newFakeBoard(w, h, endAfter int) *fakeBoard {
	return &fakeBoard{
		width:    w,
		height:   h,
		players:  [2]engine.Player{engine.NewHumanPlayer("a"), engine.NewHumanPlayer("b")},
		pieces:   [2][]string{{"Q1", "K1"}, {"Q2", "K2"}},
		endAfter: endAfter,
		cells:    types.NewBoardState(w, h),
	}
}

func (b *fakeBoard) Width() int                    { return b.width }
func (b *fakeBoard) Height() int                   { return b.height }
func (b *fakeBoard) State() types.BoardState       { return b.cells.Clone() }
func (b *fakeBoard) Player1() engine.Player        { return b.players[0] }
func (b *fakeBoard) Player2() engine.Player        { return b.players[1] }
func (b *fakeBoard) ActivePlayer() engine.Player   { return b.players[b.active] }
func (b *fakeBoard) InactivePlayer() engine.Player { return b.players[1-b.active] }
func (b *fakeBoard) History() []types.Move         { return append([]types.Move(nil), b.history...) }
func (b *fakeBoard) MoveCount() int                { return len(b.history) }

func (b *fakeBoard) ActiveMoves() []types.Move {
	if b.over {
		return nil
	}
	var moves []types.Move
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c] == types.Empty {
				moves = append(moves, types.Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

func (b *fakeBoard) ApplyMove(m types.Move) (bool, engine.Player) {
	if b.over {
		return true, b.winner
	}
	if !engine.Contains(b.ActiveMoves(), m) {
		b.over, b.winner = true, b.players[1-b.active]
		return true, b.winner
	}
	b.cells[m.Row][m.Col] = types.Blocked
	b.history = append(b.history, m)
	mover := b.players[b.active]
	b.active = 1 - b.active
	if b.endAfter > 0 && len(b.history) >= b.endAfter {
		b.over, b.winner = true, mover
	}
	return b.over, b.winner
}

func (b *fakeBoard) Pieces(p engine.Player) []string {
	for i, pl := range b.players {
		if pl == p {
			return b.pieces[i]
		}
	}
	return nil
}

func (b *fakeBoard) Copy() engine.Board {
	c := *b
	c.cells = b.cells.Clone()
	c.history = b.History()
	return &c
}

func (b *fakeBoard) Fresh() engine.Board {
	f := newFakeBoard(b.width, b.height, b.endAfter)
	f.players = b.players
	f.pieces = b.pieces
	return f
}
