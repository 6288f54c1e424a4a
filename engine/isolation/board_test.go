package isolation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isolation-viz/engine"
	"isolation-viz/types"
)

func mv(r, c int) types.Move { return types.Move{Row: r, Col: c} }

func newPlayers() (engine.Player, engine.Player) {
	return engine.NewHumanPlayer("one"), engine.NewHumanPlayer("two")
}

func TestParsePieceKind(t *testing.T) {
	k, err := ParsePieceKind("Knight")
	require.NoError(t, err)
	assert.Equal(t, Knight, k)
	k, err = ParsePieceKind("")
	require.NoError(t, err)
	assert.Equal(t, Queen, k)
	_, err = ParsePieceKind("bishop")
	assert.Error(t, err)
}

func TestPlacementAllowsEveryEmptyCell(t *testing.T) {
	p1, p2 := newPlayers()
	b := NewBoard(p1, p2, WithSize(3, 3))
	assert.Len(t, b.ActiveMoves(), 9)
	assert.Same(t, p1, b.ActivePlayer())

	over, _ := b.ApplyMove(mv(0, 0))
	assert.False(t, over)
	assert.Same(t, p2, b.ActivePlayer())
	assert.Len(t, b.ActiveMoves(), 8)
	assert.NotContains(t, b.ActiveMoves(), mv(0, 0))
}

func TestQueenTrailAndForcefield(t *testing.T) {
	p1, p2 := newPlayers()
	b := NewBoard(p1, p2, WithSize(3, 3))
	b.ApplyMove(mv(0, 0))
	b.ApplyMove(mv(2, 2))
	assert.ElementsMatch(t, []types.Move{mv(0, 1), mv(0, 2), mv(1, 0), mv(2, 0), mv(1, 1)}, b.ActiveMoves())

	b.ApplyMove(mv(0, 2))
	want := types.BoardState{
		{"X", "O", "Q1"},
		{" ", " ", " "},
		{" ", " ", "Q2"},
	}
	if diff := cmp.Diff(want, b.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []types.Move{mv(1, 1), mv(1, 2), mv(2, 1), mv(2, 0)}, b.ActiveMoves())

	b.ApplyMove(mv(2, 0))
	want = types.BoardState{
		{"X", "O", "Q1"},
		{" ", " ", " "},
		{"Q2", "O", "X"},
	}
	if diff := cmp.Diff(want, b.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []types.Move{mv(0, 1), mv(1, 1), mv(1, 2)}, b.ActiveMoves())
	assert.Equal(t, []types.Move{mv(0, 0), mv(2, 2), mv(0, 2), mv(2, 0)}, b.History())
	assert.Equal(t, 4, b.MoveCount())
}

func TestForcefieldLastsUntilOwnerMovesAgain(t *testing.T) {
	p1, p2 := newPlayers()
	b := NewBoard(p1, p2, WithSize(5, 5))
	b.ApplyMove(mv(0, 0))
	b.ApplyMove(mv(4, 1))
	b.ApplyMove(mv(0, 3))

	moves := b.ActiveMoves()
	assert.Contains(t, moves, mv(1, 1))
	assert.NotContains(t, moves, mv(0, 1), "the forcefield blocks the opponent")

	b.ApplyMove(mv(4, 2))
	state := b.State()
	assert.Equal(t, types.Forcefield, state[0][1])
	assert.Equal(t, types.Forcefield, state[0][2])
	assert.Contains(t, b.ActiveMoves(), mv(0, 1), "own forcefield does not block")

	over, _ := b.ApplyMove(mv(0, 1))
	require.False(t, over)
	want := types.BoardState{
		{"X", "Q1", "O", "X", " "},
		{" ", " ", " ", " ", " "},
		{" ", " ", " ", " ", " "},
		{" ", " ", " ", " ", " "},
		{" ", "X", "Q2", " ", " "},
	}
	if diff := cmp.Diff(want, b.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestGameEndsWhenNextPlayerIsStuck(t *testing.T) {
	p1, p2 := newPlayers()
	b := NewBoard(p1, p2, WithSize(2, 1))
	over, _ := b.ApplyMove(mv(0, 0))
	require.False(t, over)
	over, winner := b.ApplyMove(mv(0, 1))
	assert.True(t, over)
	assert.Same(t, p2, winner)

	over, winner = b.ApplyMove(mv(0, 0))
	assert.True(t, over, "moves after the end are ignored")
	assert.Same(t, p2, winner)
}

func TestIllegalMoveLoses(t *testing.T) {
	p1, p2 := newPlayers()
	b := NewBoard(p1, p2, WithSize(3, 3))
	b.ApplyMove(mv(1, 1))
	over, winner := b.ApplyMove(mv(1, 1))
	assert.True(t, over)
	assert.Same(t, p1, winner)
}

func TestKnightMoves(t *testing.T) {
	p1, p2 := newPlayers()
	b := NewBoard(p1, p2, WithSize(3, 3), WithPieceKind(Knight))
	b.ApplyMove(mv(0, 0))
	b.ApplyMove(mv(1, 1))
	assert.ElementsMatch(t, []types.Move{mv(1, 2), mv(2, 1)}, b.ActiveMoves())
	assert.Equal(t, []string{"K1"}, b.Pieces(p1))
	assert.Equal(t, []string{"K2"}, b.Pieces(p2))

	over, winner := b.ApplyMove(mv(1, 2))
	assert.True(t, over)
	assert.Same(t, p1, winner)
	assert.Equal(t, types.Blocked, b.State()[0][0])
	assert.Equal(t, types.Empty, b.State()[0][1], "knights leave no forcefield")
}

func TestCopyAndFresh(t *testing.T) {
	p1, p2 := newPlayers()
	b := NewBoard(p1, p2, WithSize(4, 3))
	b.ApplyMove(mv(0, 0))

	c := b.Copy()
	c.ApplyMove(mv(2, 3))
	assert.Equal(t, 1, b.MoveCount())
	assert.Equal(t, types.Empty, b.State()[2][3])
	assert.Equal(t, "Q2", c.State()[2][3])

	f := b.Fresh()
	assert.Equal(t, 4, f.Width())
	assert.Equal(t, 3, f.Height())
	assert.Equal(t, 0, f.MoveCount())
	assert.Same(t, p1, f.Player1())
	assert.Same(t, p2, f.Player2())
	assert.Nil(t, b.Pieces(engine.NewHumanPlayer("stranger")))
}
