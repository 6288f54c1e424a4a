package gtp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"isolation-viz/engine"
	"isolation-viz/types"
)

// Bot implements engine.Player by asking an external program for moves.
//
// Every Move call replays the board history from scratch, so the bot never
// has to track undo or forcefield state on its own.
type Bot struct {
	path string
	args []string
	log  *zap.Logger

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	mu sync.Mutex
}

// NewBot creates a bot that will run path with args on first use.
func NewBot(path string, log *zap.Logger, args ...string) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{
		path: path,
		args: args,
		log:  log.Named("gtp").With(zap.String("engine", path)),
	}
}

// Name returns the executable's base name.
func (b *Bot) Name() string {
	return filepath.Base(b.path)
}

// Connect starts the bot subprocess.
func (b *Bot) Connect() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connect()
}

func (b *Bot) connect() error {
	if b.cmd != nil {
		return nil
	}
	cmd := exec.Command(b.path, b.args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	// Discard stderr to prevent blocking
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	b.cmd = cmd
	b.stdin = stdin
	b.stdout = bufio.NewReader(stdout)
	b.log.Debug("engine started", zap.Int("pid", cmd.Process.Pid))
	return nil
}

// Move replays the board's history into the bot and asks it for the active
// player's move. Cancelling ctx kills the subprocess.
func (b *Bot) Move(ctx context.Context, board engine.Board, timeLeft func() time.Duration) (types.Move, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.connect(); err != nil {
		return types.NoMove, err
	}
	// wrap may drop b.cmd while the kill is in flight, so hold on to the
	// process that was started for this call.
	proc := b.cmd.Process
	stop := context.AfterFunc(ctx, func() { proc.Kill() })
	defer stop()

	w, h := board.Width(), board.Height()
	if _, err := b.sendCommand(fmt.Sprintf("boardsize %d %d", w, h)); err != nil {
		return types.NoMove, b.wrap(ctx, fmt.Errorf("failed to set board size: %w", err))
	}
	if _, err := b.sendCommand("clear_board"); err != nil {
		return types.NoMove, b.wrap(ctx, fmt.Errorf("failed to clear board: %w", err))
	}
	if timeLeft != nil {
		if _, err := b.sendCommand(fmt.Sprintf("time_left %d", timeLeft().Milliseconds())); err != nil {
			// Optional command.
			b.log.Debug("time_left rejected", zap.Error(err))
		}
	}

	history := board.History()
	for i, m := range history {
		cmd := fmt.Sprintf("play %s %s", colorOf(i), moveToVertex(m, h))
		if _, err := b.sendCommand(cmd); err != nil {
			return types.NoMove, b.wrap(ctx, fmt.Errorf("failed to replay move %d: %w", i+1, err))
		}
	}

	response, err := b.sendCommand(fmt.Sprintf("genmove %s", colorOf(len(history))))
	if err != nil {
		return types.NoMove, b.wrap(ctx, fmt.Errorf("genmove: %w", err))
	}
	m, err := vertexToMove(response, w, h)
	if err != nil {
		return types.NoMove, fmt.Errorf("engine reply: %w", err)
	}
	return m, nil
}

// wrap prefers the context error when the failure came from a kill.
func (b *Bot) wrap(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		// The process was killed; start a new one next time.
		if b.cmd != nil {
			b.cmd.Wait()
		}
		b.cmd, b.stdin, b.stdout = nil, nil, nil
		return ctxErr
	}
	return err
}

// sendCommand sends a command and returns the response.
// Must be called while holding the lock.
func (b *Bot) sendCommand(cmd string) (string, error) {
	if b.stdin == nil {
		return "", errors.New("engine not running")
	}
	b.log.Debug("send", zap.String("cmd", cmd))

	if _, err := fmt.Fprintf(b.stdin, "%s\n", cmd); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	var response strings.Builder
	for {
		line, err := b.stdout.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read response: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")

		// Empty line signals end of response
		if line == "" {
			if response.Len() == 0 {
				continue
			}
			break
		}
		if response.Len() > 0 {
			response.WriteString("\n")
		}
		response.WriteString(line)
	}

	result := response.String()
	b.log.Debug("recv", zap.String("response", result))

	if strings.HasPrefix(result, "?") {
		return "", fmt.Errorf("engine error: %s", strings.TrimSpace(strings.TrimPrefix(result, "?")))
	}
	return strings.TrimSpace(strings.TrimPrefix(result, "=")), nil
}

// Close shuts down the subprocess.
func (b *Bot) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stdin != nil {
		b.sendCommand("quit")
		b.stdin.Close()
	}
	if b.cmd != nil {
		b.cmd.Wait()
	}
	b.cmd, b.stdin, b.stdout = nil, nil, nil
}
