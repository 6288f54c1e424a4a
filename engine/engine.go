// Package engine defines the contracts between the front-end and the game:
// the board that owns the rules and the players that choose moves.
package engine

import (
	"context"
	"errors"
	"time"

	"isolation-viz/types"
)

// ErrIllegalMove is returned by players that produce a move outside the
// active player's legal moves, and wrapped by the UI when it rejects one.
var ErrIllegalMove = errors.New("illegal move")

// Player chooses moves for one side of the board.
type Player interface {
	// Name is shown in the UI and logs.
	Name() string

	// Move picks a move for the active player of b. b is a private copy that
	// the player may mutate. timeLeft reports the remaining thinking budget.
	Move(ctx context.Context, b Board, timeLeft func() time.Duration) (types.Move, error)
}

// Board is the game state object. Implementations own move legality, the
// trail/forcefield mechanic and win detection.
type Board interface {
	Width() int
	Height() int

	// State returns a deep copy of the grid.
	State() types.BoardState

	Player1() Player
	Player2() Player
	ActivePlayer() Player
	InactivePlayer() Player

	// ActiveMoves returns the legal moves of the active player.
	ActiveMoves() []types.Move

	// ApplyMove plays m for the active player and passes the turn.
	// It reports whether the game ended and, if so, the winner.
	ApplyMove(m types.Move) (over bool, winner Player)

	// Pieces returns the names of the pieces p owns, e.g. "Q1".
	Pieces(p Player) []string

	// History returns every move applied so far, in order.
	History() []types.Move
	MoveCount() int

	// Copy returns an independent deep copy.
	Copy() Board

	// Fresh returns an empty board with the same players, size and rules.
	Fresh() Board
}

// HumanPlayer stands in for a person at the keyboard. The UI moves for it.
type HumanPlayer struct {
	Label string
}

// NewHumanPlayer creates a human placeholder with the given display name.
func NewHumanPlayer(label string) *HumanPlayer {
	return &HumanPlayer{Label: label}
}

func (h *HumanPlayer) Name() string {
	return h.Label
}

// Move always fails: humans move through the UI.
func (h *HumanPlayer) Move(context.Context, Board, func() time.Duration) (types.Move, error) {
	return types.NoMove, errors.New("human player moves are made through the UI")
}

// Contains reports whether m is one of moves.
func Contains(moves []types.Move, m types.Move) bool {
	for _, legal := range moves {
		if legal == m {
			return true
		}
	}
	return false
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Width          int
	Height         int
	PieceKind      string        // "queen" or "knight"
	Opponent       string        // "none", "random", "mobility" or "exec"
	EnginePath     string        // External bot for the "exec" opponent
	ShowLegalMoves bool          // Highlight the active player's legal moves
	TimeLimit      time.Duration // Thinking budget handed to the opponent
	Seed           int64         // Seed for the random opponent; 0 means time-based
}
