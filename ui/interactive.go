package ui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"isolation-viz/config"
	"isolation-viz/engine"
	"isolation-viz/record"
	"isolation-viz/types"
)

// InteractiveGame lets a person play a board against another person or a
// computer opponent.
type InteractiveGame struct {
	app   *tview.Application
	board engine.Board
	log   *zap.Logger
	id    uuid.UUID

	// nil when both sides are human
	opponent       engine.Player
	showLegalMoves bool
	timeLimit      time.Duration

	player1Pieces mapset.Set[string]
	player2Pieces mapset.Set[string]
	placed        mapset.Set[string]
	selected      string
	over          bool
	winner        engine.Player
	thinking      bool
	err           error

	ctx    context.Context
	cancel context.CancelFunc

	layout       *tview.Flex
	turnLabel    *tview.TextView
	messageLabel *tview.TextView
	p1Row        *PieceButtonRow
	p2Row        *PieceButtonRow
	buttons      map[string]*PieceButton
	grid         *BoardGrid
	info         *GameInfoPanel
	debug        *DebugOutput

	onReplay func(b engine.Board, history []types.MovePair)
}

// NewInteractiveGame wires a board to a new game screen. Player 2 of the
// board is the computer opponent unless it is an *engine.HumanPlayer.
// app may be nil, in which case computer moves run synchronously.
func NewInteractiveGame(app *tview.Application, b engine.Board, showLegalMoves bool, cfg *config.Config, log *zap.Logger) *InteractiveGame {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	g := &InteractiveGame{
		app:            app,
		board:          b,
		id:             id,
		log:            log.Named("game").With(zap.String("session", id.String())),
		showLegalMoves: showLegalMoves,
		timeLimit:      cfg.TimeLimit(),
		player1Pieces:  pieceSet(b, b.Player1(), "P1"),
		player2Pieces:  pieceSet(b, b.Player2(), "P2"),
		placed:         mapset.New[string](),
		ctx:            ctx,
		cancel:         cancel,
		buttons:        make(map[string]*PieceButton),
	}
	if _, human := b.Player2().(*engine.HumanPlayer); !human {
		g.opponent = b.Player2()
	}

	g.turnLabel = tview.NewTextView().SetText("Player 1's turn")
	g.turnLabel.SetTextColor(MenuColors.Title)
	initial := "Click a square to place your piece"
	if g.player1Pieces.Size() > 1 || g.player2Pieces.Size() > 1 {
		initial = "Select a piece to place"
	}
	g.messageLabel = tview.NewTextView().SetText(initial)
	g.messageLabel.SetTextColor(MenuColors.Label)

	g.debug = NewDebugOutput(g.log)
	g.info = NewGameInfoPanel()
	g.grid = NewBoardGrid(cfg)
	g.grid.SetBorder(true)
	g.grid.SetBorderColor(MenuColors.Border)
	g.grid.SetClickFunc(g.HandleClick)

	selectedColor := g.grid.palette.Selected
	g.p1Row = NewPieceButtonRow(g.pieceButtons(g.player1Pieces), selectedColor, g.onPieceButton)
	g.p2Row = NewPieceButtonRow(g.pieceButtons(g.player2Pieces), selectedColor, g.onPieceButton)

	g.updateDisplay()
	g.buildLayout()
	g.updateUIForCurrentPlayer()

	g.log.Info("game started",
		zap.Int("width", b.Width()),
		zap.Int("height", b.Height()),
		zap.String("player1", b.Player1().Name()),
		zap.String("player2", b.Player2().Name()),
		zap.Bool("legal_moves", showLegalMoves))
	return g
}

// pieceSet returns the pieces p owns, or fallback when the board names none.
func pieceSet(b engine.Board, p engine.Player, fallback string) mapset.Set[string] {
	set := mapset.New[string]()
	for _, piece := range b.Pieces(p) {
		set.Put(piece)
	}
	if set.Size() == 0 {
		set.Put(fallback)
	}
	return set
}

func sorted(set mapset.Set[string]) []string {
	var out []string
	set.Each(func(piece string) {
		out = append(out, piece)
	})
	slices.Sort(out)
	return out
}

// pieceButtons creates buttons only for players with a choice to make.
func (g *InteractiveGame) pieceButtons(pieces mapset.Set[string]) []*PieceButton {
	if pieces.Size() < 2 {
		return nil
	}
	var btns []*PieceButton
	for _, piece := range sorted(pieces) {
		btn := NewPieceButton(piece)
		g.buttons[piece] = btn
		btns = append(btns, btn)
	}
	return btns
}

func (g *InteractiveGame) buildLayout() {
	w, h := g.grid.Size()
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(g.grid, w+2, 0, true).
		AddItem(g.info.Box(), 26, 0, false)

	hint := tview.NewTextView().
		SetText("arrows/hjkl: move  enter: place  1-9: select piece  r: replay  q: back")
	hint.SetTextColor(MenuColors.Hint)

	g.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(g.turnLabel, 1, 0, false).
		AddItem(g.messageLabel, 1, 0, false).
		AddItem(g.p1Row, 1, 0, false).
		AddItem(g.p2Row, 1, 0, false).
		AddItem(boardRow, h+2, 0, true).
		AddItem(g.debug.View(), 0, 1, false).
		AddItem(hint, 1, 0, false)
	g.layout.SetInputCapture(g.handleKey)
}

// Primitive returns the game screen.
func (g *InteractiveGame) Primitive() tview.Primitive {
	return g.layout
}

// Grid returns the board widget.
func (g *InteractiveGame) Grid() *BoardGrid {
	return g.grid
}

// Debug returns the debug output panel.
func (g *InteractiveGame) Debug() *DebugOutput {
	return g.debug
}

// Board returns the game state object.
func (g *InteractiveGame) Board() engine.Board {
	return g.board
}

// Message returns the text of the message label.
func (g *InteractiveGame) Message() string {
	return g.messageLabel.GetText(true)
}

// Turn returns the text of the turn label.
func (g *InteractiveGame) Turn() string {
	return g.turnLabel.GetText(true)
}

// Selected returns the selected piece, or "" if none.
func (g *InteractiveGame) Selected() string {
	return g.selected
}

// IsOver reports whether the game has ended.
func (g *InteractiveGame) IsOver() bool {
	return g.over
}

// Winner returns the winning player once the game is over.
func (g *InteractiveGame) Winner() engine.Player {
	return g.winner
}

// Thinking reports whether the computer is choosing a move.
func (g *InteractiveGame) Thinking() bool {
	return g.thinking
}

// Err returns the last error raised by the computer opponent.
func (g *InteractiveGame) Err() error {
	return g.err
}

// PieceRows returns the piece button rows of player 1 and player 2.
func (g *InteractiveGame) PieceRows() (*PieceButtonRow, *PieceButtonRow) {
	return g.p1Row, g.p2Row
}

// History returns the moves played so far grouped into rounds.
func (g *InteractiveGame) History() []types.MovePair {
	return record.FromBoard(g.board)
}

// SetReplayFunc sets the handler used to open the played moves in the
// replay viewer.
func (g *InteractiveGame) SetReplayFunc(fn func(b engine.Board, history []types.MovePair)) {
	g.onReplay = fn
}

// Close stops a pending computer move.
func (g *InteractiveGame) Close() {
	g.cancel()
}

func (g *InteractiveGame) debugPrint(args ...any) {
	g.debug.Print(args...)
}

func (g *InteractiveGame) isPlayer1Turn() bool {
	return g.board.ActivePlayer() == g.board.Player1()
}

func (g *InteractiveGame) currentPieces() mapset.Set[string] {
	if g.isPlayer1Turn() {
		return g.player1Pieces
	}
	return g.player2Pieces
}

func (g *InteractiveGame) inPlacement() bool {
	return g.placed.Size() < g.player1Pieces.Size()+g.player2Pieces.Size()
}

// placedOf counts the pieces of set already on the board.
func (g *InteractiveGame) placedOf(set mapset.Set[string]) int {
	n := 0
	set.Each(func(piece string) {
		if g.placed.Has(piece) {
			n++
		}
	})
	return n
}

func (g *InteractiveGame) winnerName() string {
	if g.winner == g.board.Player1() {
		return "Player 1"
	}
	return "Player 2"
}

func (g *InteractiveGame) setMessage(msg string) {
	g.messageLabel.SetText(msg)
}

func (g *InteractiveGame) onPieceButton(b *PieceButton) {
	g.SelectPiece(b.Piece())
}

// SelectPiece chooses the piece the active player will move next.
func (g *InteractiveGame) SelectPiece(piece string) {
	if g.thinking {
		return
	}
	current := g.currentPieces()
	if !current.Has(piece) {
		g.setMessage("Not your piece to move!")
		return
	}

	if g.inPlacement() && g.placedOf(current) != current.Size() && g.placed.Has(piece) {
		g.setMessage("That piece is already placed! Select an unplaced piece.")
		return
	}

	g.selected = piece
	for name, btn := range g.buttons {
		btn.SetSuccess(name == piece)
	}

	label := piece
	if btn, ok := g.buttons[piece]; ok {
		label = btn.Label()
	}
	g.setMessage(fmt.Sprintf("Selected %s. Click a position to move.", label))
	g.updateDisplay()
}

// HandleClick reacts to a click on the board cell at (row, col).
func (g *InteractiveGame) HandleClick(row, col int) {
	if g.over {
		g.setMessage(fmt.Sprintf("The game is over! %s already won!", g.winnerName()))
		return
	}
	if g.thinking {
		return
	}

	current := g.currentPieces()
	if g.selected == "" && current.Size() == 1 {
		g.selected = sorted(current)[0]
	}
	if g.selected == "" {
		g.setMessage("Please select a piece first!")
		return
	}

	move := types.Move{Row: row, Col: col}
	if !engine.Contains(g.board.ActiveMoves(), move) {
		g.setMessage(fmt.Sprintf("Invalid move for %s!", g.selected))
		return
	}

	g.makeMove(move)

	if !g.inPlacement() && g.opponent != nil && g.board.ActivePlayer() == g.board.Player2() {
		g.makeComputerMove()
	}
}

func (g *InteractiveGame) updateUIForCurrentPlayer() {
	p1Turn := g.isPlayer1Turn()
	if p1Turn {
		g.turnLabel.SetText("Player 1's turn")
	} else {
		g.turnLabel.SetText("Player 2's turn")
	}

	name := "Player 2"
	if p1Turn {
		name = "Player 1"
	}

	switch {
	case g.inPlacement():
		g.p1Row.SetVisible(p1Turn)
		g.p2Row.SetVisible(!p1Turn)
		current := g.currentPieces()
		if g.placedOf(current) != current.Size() {
			g.setMessage(fmt.Sprintf("%s must select where to place a piece", name))
		} else {
			g.setMessage(fmt.Sprintf("%s select a piece", name))
		}
	case g.opponent != nil:
		g.p1Row.SetVisible(p1Turn)
		g.p2Row.SetVisible(false)
		if p1Turn {
			g.setMessage("Player 1's turn")
		} else {
			g.setMessage("Computer is thinking...")
		}
	default:
		g.p1Row.SetVisible(p1Turn)
		g.p2Row.SetVisible(!p1Turn)
		g.setMessage(fmt.Sprintf("%s's turn", name))
	}
}

// updateDisplay repaints the grid from the board.
func (g *InteractiveGame) updateDisplay() {
	g.grid.SetState(VizState(g.board, g.showLegalMoves))
	g.info.SetBoard(g.board)
}

func (g *InteractiveGame) makeMove(move types.Move) {
	g.debugPrint("Moving piece", g.selected, "to", move.Row, move.Col)
	g.placed.Put(g.selected)
	g.over, g.winner = g.board.ApplyMove(move)

	g.selected = ""
	for _, btn := range g.buttons {
		btn.SetSuccess(false)
	}

	g.updateDisplay()
	g.updateUIForCurrentPlayer()

	if g.over {
		name := g.winnerName()
		g.setMessage(fmt.Sprintf("Game Over! Winner: %s", name))
		g.debugPrint(name, "wins!")
		g.log.Info("game over", zap.String("winner", name), zap.Int("moves", g.board.MoveCount()))
	}
}

func (g *InteractiveGame) makeComputerMove() {
	legal := g.board.ActiveMoves()
	if len(legal) == 0 {
		return
	}

	if g.placedOf(g.player2Pieces) < g.player2Pieces.Size() {
		for _, piece := range sorted(g.player2Pieces) {
			if !g.placed.Has(piece) {
				g.selected = piece
				break
			}
		}
	} else {
		g.selected = sorted(g.player2Pieces)[0]
	}

	snapshot := g.board.Copy()
	deadline := time.Now().Add(g.timeLimit)
	timeLeft := func() time.Duration { return time.Until(deadline) }

	g.thinking = true
	g.think(func() func() {
		m, err := g.opponent.Move(g.ctx, snapshot, timeLeft)
		return func() {
			g.thinking = false
			g.applyComputerMove(m, err, legal)
		}
	})
}

// think runs work off the UI goroutine and applies its result on it.
func (g *InteractiveGame) think(work func() func()) {
	if g.app == nil {
		work()()
		return
	}
	go func() {
		apply := work()
		g.app.QueueUpdateDraw(apply)
	}()
}

func (g *InteractiveGame) applyComputerMove(m types.Move, err error, legal []types.Move) {
	if g.ctx.Err() != nil {
		return
	}
	if err != nil {
		g.selected = ""
		g.err = fmt.Errorf("computer player: %w", err)
		g.setMessage(fmt.Sprintf("Computer player failed: %v", err))
		g.debugPrint("Computer player failed:", err)
		g.log.Error("opponent move failed", zap.Error(err))
		return
	}
	if !engine.Contains(legal, m) {
		g.selected = ""
		msg := fmt.Sprintf("Computer player made invalid move: %v", m)
		g.err = fmt.Errorf("%s: %w", msg, engine.ErrIllegalMove)
		g.setMessage(msg)
		g.debugPrint(msg)
		g.log.Error("opponent made invalid move", zap.Stringer("move", m))
		return
	}
	g.makeMove(m)
}

// pressPiece selects the n-th piece of the active player's button row.
func (g *InteractiveGame) pressPiece(n int) bool {
	if g.isPlayer1Turn() {
		return g.p1Row.Press(n)
	}
	return g.p2Row.Press(n)
}

func (g *InteractiveGame) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}
	r := event.Rune()
	switch {
	case r >= '1' && r <= '9':
		if g.pressPiece(int(r - '1')) {
			return nil
		}
	case r == 'r':
		if g.onReplay != nil && g.board.MoveCount() > 0 && !g.thinking {
			g.onReplay(g.board, g.History())
			return nil
		}
	}
	return event
}
