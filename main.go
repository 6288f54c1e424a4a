// isolation-viz is a terminal application to play and replay isolation games.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"isolation-viz/config"
	"isolation-viz/engine"
	"isolation-viz/record"
	"isolation-viz/types"
	"isolation-viz/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagConfig   string
	flagLog      bool
	flagWidth    int
	flagHeight   int
	flagPieces   string
	flagOpponent string
	flagEngine   string
	flagLegal    bool
	flagSeed     int64
	flagPrint    bool
)

var (
	cfg    *config.Config
	logger *zap.Logger

	app      *tview.Application
	rootPage *tview.Pages
	game     *ui.InteractiveGame
	closeOpp func()
)

var rootCmd = &cobra.Command{
	Use:   "isolation-viz",
	Short: "Play and replay isolation games in the terminal",
	Long: `isolation-viz is a terminal front-end for isolation, a two-player game in
which pieces leave blocked cells and forcefield trails behind them.

Run without arguments to open the setup screen.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return err
		}
		if logger, err = newLogger(cfg, flagLog); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(gameConfigFromFlags(cmd), "setup", nil)
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(gameConfigFromFlags(cmd), "game", nil)
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Step through a recorded game",
	Long: `Opens a recorded game (.json, .yaml or .yml) in the replay viewer.
Without a file the replay browser lists the records directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "isolation-viz %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: xdg config dir isolation-viz/config.json)")
	rootCmd.PersistentFlags().BoolVar(&flagLog, "log", false, "write a debug log to the xdg cache dir")
	rootCmd.PersistentFlags().BoolVar(&flagLegal, "legal", false, "highlight the active player's legal moves")

	for _, cmd := range []*cobra.Command{rootCmd, playCmd} {
		cmd.Flags().IntVar(&flagWidth, "width", 0, "board width")
		cmd.Flags().IntVar(&flagHeight, "height", 0, "board height")
		cmd.Flags().StringVar(&flagPieces, "pieces", "", "piece kind (queen or knight)")
		cmd.Flags().StringVar(&flagOpponent, "opponent", "", "opponent (none, random, mobility or exec)")
		cmd.Flags().StringVar(&flagEngine, "engine", "", "external engine for --opponent exec")
		cmd.Flags().Int64Var(&flagSeed, "seed", 0, "seed for the random opponent")
	}
	replayCmd.Flags().BoolVar(&flagPrint, "print", false, "print every state to stdout instead of opening the viewer")

	rootCmd.AddCommand(playCmd, replayCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	return config.InitConfig()
}

// newLogger writes to the debug log file when enabled. The TUI owns the
// terminal, so logs never go to stderr.
func newLogger(c *config.Config, enabled bool) (*zap.Logger, error) {
	if !enabled {
		return zap.NewNop(), nil
	}
	path, err := c.LogPath()
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

// gameConfigFromFlags starts from the configured defaults and applies the
// flags that were set.
func gameConfigFromFlags(cmd *cobra.Command) engine.GameConfig {
	d := cfg.Game
	gc := engine.GameConfig{
		Width:          d.Width,
		Height:         d.Height,
		PieceKind:      d.PieceKind,
		Opponent:       d.Opponent,
		EnginePath:     d.EnginePath,
		ShowLegalMoves: d.ShowLegalMoves,
		TimeLimit:      cfg.TimeLimit(),
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		gc.Width = flagWidth
	}
	if flags.Changed("height") {
		gc.Height = flagHeight
	}
	if flags.Changed("pieces") {
		gc.PieceKind = flagPieces
	}
	if flags.Changed("opponent") {
		gc.Opponent = flagOpponent
	}
	if flags.Changed("engine") {
		gc.EnginePath = flagEngine
		if !flags.Changed("opponent") {
			gc.Opponent = "exec"
		}
	}
	if flags.Changed("legal") {
		gc.ShowLegalMoves = flagLegal
	}
	if flags.Changed("seed") {
		gc.Seed = flagSeed
	}
	return gc
}

func runReplay(cmd *cobra.Command, args []string) error {
	gc := gameConfigFromFlags(cmd)
	if len(args) == 0 {
		return runTUI(gc, "browser", nil)
	}

	rec, err := record.Load(args[0])
	if err != nil {
		return err
	}
	b, err := rec.Board(engine.NewHumanPlayer(rec.Player1), engine.NewHumanPlayer(rec.Player2))
	if err != nil {
		return fmt.Errorf("%s: %w", rec.FileName, err)
	}
	if flagPrint {
		return printReplay(cmd.OutOrStdout(), b, rec.Moves, gc.ShowLegalMoves)
	}
	return runTUI(gc, "replay", func() {
		openReplay(b, rec.Moves, gc.ShowLegalMoves, "setup")
	})
}

// runTUI builds the pages and runs the application starting on page.
// start, when set, runs after the pages exist and before the event loop.
func runTUI(gc engine.GameConfig, page string, start func()) error {
	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ▦ isolation ")

	setupUI := ui.NewGameSetup(gc,
		func(gameCfg engine.GameConfig) {
			rememberGame(gameCfg)
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			showBrowser()
		},
	)
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, page == "setup")

	switch {
	case start != nil:
		start()
	case page == "game":
		startGame(gc)
	case page == "browser":
		showBrowser()
	}

	defer stopGame()
	logger.Debug("tui started", zap.String("page", page))
	return app.SetRoot(rootPage, true).Run()
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	stopGame()

	b, closer, err := newBoard(gameCfg, logger)
	if err != nil {
		showError(fmt.Sprintf("Failed to start game:\n%s", err.Error()))
		return
	}
	closeOpp = closer

	game = ui.NewInteractiveGame(app, b, gameCfg.ShowLegalMoves, cfg, logger)
	game.SetReplayFunc(func(b engine.Board, history []types.MovePair) {
		openReplay(b, history, gameCfg.ShowLegalMoves, "game")
	})

	frame := tview.NewFlex().AddItem(game.Primitive(), 0, 1, true)
	frame.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			stopGame()
			rootPage.SwitchToPage("setup")
			return nil
		}
		return event
	})
	rootPage.AddPage("game", frame, true, true)
	app.SetFocus(game.Grid())
}

// stopGame cancels a pending computer move and shuts down the opponent.
func stopGame() {
	if game != nil {
		game.Close()
		game = nil
	}
	if closeOpp != nil {
		closeOpp()
		closeOpp = nil
	}
}

func showBrowser() {
	browser := ui.NewReplayBrowser(cfg,
		func(rec *record.Record) {
			b, err := rec.Board(engine.NewHumanPlayer(rec.Player1), engine.NewHumanPlayer(rec.Player2))
			if err != nil {
				showError(fmt.Sprintf("Cannot replay %s:\n%s", rec.FileName, err.Error()))
				return
			}
			openReplay(b, rec.Moves, flagLegal || cfg.Game.ShowLegalMoves, "browser")
		},
		func() {
			rootPage.SwitchToPage("setup")
		},
	)
	rootPage.AddPage("browser", browser.Flex(), true, true)
}

// openReplay shows the replay viewer; q returns to the back page.
func openReplay(b engine.Board, history []types.MovePair, showLegal bool, back string) {
	replay, err := ui.NewReplayGame(app, b, history, showLegal, cfg, logger)
	if err != nil {
		showError(fmt.Sprintf("Cannot replay game:\n%s", err.Error()))
		return
	}
	view := replay.Show()
	frame := tview.NewFlex().AddItem(view, 0, 1, true)
	frame.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.RemovePage("replay")
			rootPage.SwitchToPage(back)
			return nil
		}
		return event
	})
	rootPage.AddPage("replay", frame, true, true)
	replay.Focus(app)
}

func showError(text string) {
	logger.Warn("error shown", zap.String("text", text))
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}
