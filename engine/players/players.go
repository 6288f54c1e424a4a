// Package players provides simple built-in computer opponents.
package players

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"isolation-viz/engine"
	"isolation-viz/types"
)

var errNoMoves = errors.New("no legal moves")

// RandomPlayer picks uniformly among the legal moves.
type RandomPlayer struct {
	rng *rand.Rand
}

// NewRandomPlayer creates a random player. A zero seed uses the clock.
func NewRandomPlayer(seed int64) *RandomPlayer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Name() string {
	return "Random"
}

func (p *RandomPlayer) Move(ctx context.Context, b engine.Board, _ func() time.Duration) (types.Move, error) {
	if err := ctx.Err(); err != nil {
		return types.NoMove, err
	}
	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return types.NoMove, errNoMoves
	}
	return moves[p.rng.Intn(len(moves))], nil
}

// MobilityPlayer looks one move ahead and keeps the move that leaves it the
// most moves relative to its opponent.
type MobilityPlayer struct {
	label string
}

// NewMobilityPlayer creates a one-ply mobility player.
func NewMobilityPlayer() *MobilityPlayer {
	return &MobilityPlayer{label: "Mobility"}
}

func (p *MobilityPlayer) Name() string {
	return p.label
}

func (*MobilityPlayer) Move(ctx context.Context, b engine.Board, timeLeft func() time.Duration) (types.Move, error) {
	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return types.NoMove, errNoMoves
	}
	me := b.ActivePlayer()
	best, bestScore := moves[0], -1<<31
	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			return best, nil
		}
		if timeLeft != nil && timeLeft() <= 0 {
			break
		}
		next := b.Copy()
		over, winner := next.ApplyMove(m)
		if over && winner == me {
			return m, nil
		}
		// next's active player is the opponent.
		score := -len(next.ActiveMoves())
		if mine := mobility(next, me); mine >= 0 {
			score += mine
		}
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, nil
}

// mobility returns p's move count on b, or -1 when the board cannot tell.
func mobility(b engine.Board, p engine.Player) int {
	type inactive interface{ InactiveMoves() []types.Move }
	if b.InactivePlayer() != p {
		return -1
	}
	if ib, ok := b.(inactive); ok {
		return len(ib.InactiveMoves())
	}
	return -1
}
