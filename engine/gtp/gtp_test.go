package gtp

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isolation-viz/engine"
	"isolation-viz/engine/isolation"
	"isolation-viz/types"
)

// TestHelperProcess is not a real test. It is re-executed by the tests below
// as a stand-in bot speaking the protocol on stdin/stdout.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GTP_HELPER_PROCESS") != "1" {
		return
	}
	reply := os.Getenv("GTP_HELPER_GENMOVE")
	plays := 0
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit":
			fmt.Print("=\n\n")
			os.Exit(0)
		case "play":
			plays++
			fmt.Print("=\n\n")
		case "clear_board":
			plays = 0
			fmt.Print("=\n\n")
		case "genmove":
			switch reply {
			case "hang":
				time.Sleep(time.Minute)
			case "count":
				fmt.Printf("= A%d\n\n", plays+1)
			case "error":
				fmt.Print("? cannot move\n\n")
			default:
				fmt.Printf("= %s\n\n", reply)
			}
		case "time_left":
			fmt.Print("? unknown command\n\n")
		default:
			fmt.Print("=\n\n")
		}
	}
	os.Exit(0)
}

func helperBot(t *testing.T, genmove string) *Bot {
	t.Helper()
	t.Setenv("GTP_HELPER_PROCESS", "1")
	t.Setenv("GTP_HELPER_GENMOVE", genmove)
	bot := NewBot(os.Args[0], nil, "-test.run=TestHelperProcess")
	t.Cleanup(bot.Close)
	return bot
}

func newBoard() *isolation.Board {
	return isolation.NewBoard(engine.NewHumanPlayer("a"), engine.NewHumanPlayer("b"))
}

func budget() time.Duration { return time.Second }

func TestBotMove(t *testing.T) {
	bot := helperBot(t, "c5")
	m, err := bot.Move(context.Background(), newBoard(), budget)
	require.NoError(t, err)
	assert.Equal(t, types.Move{Row: 2, Col: 2}, m)
}

func TestBotReplaysHistory(t *testing.T) {
	bot := helperBot(t, "count")
	b := newBoard()
	b.ApplyMove(types.Move{Row: 0, Col: 0})
	b.ApplyMove(types.Move{Row: 6, Col: 6})

	m, err := bot.Move(context.Background(), b, budget)
	require.NoError(t, err)
	// Two plays were replayed, so the helper answers A3.
	assert.Equal(t, types.Move{Row: 4, Col: 0}, m)

	// A second call starts from a cleared board again.
	m, err = bot.Move(context.Background(), b, budget)
	require.NoError(t, err)
	assert.Equal(t, types.Move{Row: 4, Col: 0}, m)
}

func TestBotErrorReply(t *testing.T) {
	bot := helperBot(t, "error")
	_, err := bot.Move(context.Background(), newBoard(), budget)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move")
}

func TestBotBadVertex(t *testing.T) {
	bot := helperBot(t, "Z99")
	_, err := bot.Move(context.Background(), newBoard(), budget)
	assert.Error(t, err)
}

func TestBotCancel(t *testing.T) {
	bot := helperBot(t, "hang")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := bot.Move(ctx, newBoard(), budget)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBotRestartsAfterCancel(t *testing.T) {
	bot := helperBot(t, "hang")
	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		_, err := bot.Move(ctx, newBoard(), budget)
		cancel()
		require.ErrorIs(t, err, context.DeadlineExceeded, "attempt %d", i+1)
	}

	bot.mu.Lock()
	defer bot.mu.Unlock()
	assert.Nil(t, bot.cmd)
}

func TestBotMissingExecutable(t *testing.T) {
	bot := NewBot("/nonexistent/isolation-bot", nil)
	_, err := bot.Move(context.Background(), newBoard(), budget)
	assert.Error(t, err)
	assert.Equal(t, "isolation-bot", bot.Name())
}
