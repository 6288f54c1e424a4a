package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"isolation-viz/config"
	"isolation-viz/engine"
	"isolation-viz/engine/gtp"
	"isolation-viz/engine/isolation"
	"isolation-viz/engine/players"
)

// newOpponent creates player 2 for gc. The returned closer releases any
// external process and is never nil.
func newOpponent(gc engine.GameConfig, log *zap.Logger) (engine.Player, func(), error) {
	noop := func() {}
	switch gc.Opponent {
	case "", "none":
		return engine.NewHumanPlayer("Player 2"), noop, nil
	case "random":
		return players.NewRandomPlayer(gc.Seed), noop, nil
	case "mobility":
		return players.NewMobilityPlayer(), noop, nil
	case "exec":
		if gc.EnginePath == "" {
			return nil, noop, errors.New("opponent \"exec\" needs an engine path")
		}
		bot := gtp.NewBot(gc.EnginePath, log)
		if err := bot.Connect(); err != nil {
			return nil, noop, err
		}
		return bot, bot.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown opponent %q", gc.Opponent)
}

// newBoard creates the board for a new game.
func newBoard(gc engine.GameConfig, log *zap.Logger) (engine.Board, func(), error) {
	if gc.Width < 1 || gc.Height < 1 || gc.Width > 25 || gc.Height > 25 {
		return nil, nil, fmt.Errorf("board size %dx%d: dimensions must be between 1 and 25", gc.Width, gc.Height)
	}
	kind, err := isolation.ParsePieceKind(gc.PieceKind)
	if err != nil {
		return nil, nil, err
	}
	p2, closer, err := newOpponent(gc, log)
	if err != nil {
		return nil, nil, err
	}
	b := isolation.NewBoard(engine.NewHumanPlayer("Player 1"), p2,
		isolation.WithSize(gc.Width, gc.Height),
		isolation.WithPieceKind(kind))
	log.Info("new board",
		zap.Int("width", gc.Width),
		zap.Int("height", gc.Height),
		zap.Stringer("pieces", kind),
		zap.String("opponent", p2.Name()))
	return b, closer, nil
}

// gameDefaults converts the settings of a started game back into config form.
func gameDefaults(gc engine.GameConfig) config.GameDefaults {
	return config.GameDefaults{
		Width:          gc.Width,
		Height:         gc.Height,
		PieceKind:      gc.PieceKind,
		Opponent:       gc.Opponent,
		EnginePath:     gc.EnginePath,
		ShowLegalMoves: gc.ShowLegalMoves,
		TimeLimitMs:    int(gc.TimeLimit.Milliseconds()),
	}
}

// rememberGame stores the setup form's choices as the next session's
// defaults. A failed save is logged and does not stop the game.
func rememberGame(gc engine.GameConfig) {
	if err := cfg.SaveGame(gameDefaults(gc)); err != nil {
		logger.Warn("failed to save game defaults", zap.Error(err))
	}
}
