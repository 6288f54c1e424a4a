package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"isolation-viz/config"
	"isolation-viz/engine"
	"isolation-viz/types"
)

var (
	// ErrEmptyHistory is returned when there are no moves to replay.
	ErrEmptyHistory = errors.New("move history is empty")

	// ErrInconsistentHistory is returned when replaying the move history
	// does not end on the state of the game it was recorded from.
	ErrInconsistentHistory = errors.New("end game state based on move history is not consistent with state of the game object")
)

type replayFrame struct {
	viz   types.BoardState
	state types.BoardState
}

// ReplayGame steps through a recorded move history on a fresh board.
type ReplayGame struct {
	app            *tview.Application
	game           engine.Board
	history        []types.MovePair
	showLegalMoves bool
	log            *zap.Logger

	newBoard     engine.Board
	boardHistory []replayFrame
	visualized   types.BoardState
	index        int
	syncing      bool

	grid        *BoardGrid
	output      *tview.TextView
	input       *tview.InputField
	slider      *MoveSlider
	stateButton *tview.Button
	layout      *tview.Flex
	focusables  []tview.Primitive
}

// NewReplayGame replays history onto a fresh copy of game and records every
// intermediate state. The replay must end on game's current state.
func NewReplayGame(app *tview.Application, game engine.Board, history []types.MovePair, showLegalMoves bool, cfg *config.Config, log *zap.Logger) (*ReplayGame, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &ReplayGame{
		app:            app,
		game:           game,
		history:        history,
		showLegalMoves: showLegalMoves,
		log:            log.Named("replay"),
		newBoard:       game.Fresh(),
	}
	if err := r.generateBoardStateHistory(); err != nil {
		return nil, err
	}

	r.grid = NewBoardGrid(cfg)
	r.grid.SetBorder(true)
	r.grid.SetBorderColor(MenuColors.Border)
	r.grid.SetState(r.boardHistory[0].viz)

	r.output = tview.NewTextView()
	r.output.SetBorder(true)
	r.output.SetTitle(" Board state ")
	r.output.SetTitleAlign(tview.AlignLeft)
	r.output.SetBorderColor(MenuColors.Border)
	r.output.SetTextColor(MenuColors.Label)

	r.slider = NewMoveSlider("move[i]", 0, len(r.boardHistory)-1, func(v int) {
		r.Update(v)
	})
	r.input = tview.NewInputField().
		SetLabel("i: ").
		SetText("0").
		SetAcceptanceFunc(tview.InputFieldInteger).
		SetChangedFunc(r.onInputChanged)
	r.input.SetFieldBackgroundColor(MenuColors.ButtonBG)
	r.input.SetLabelColor(MenuColors.Label)

	r.stateButton = tview.NewButton("get board state").SetSelectedFunc(r.ShowBoardState)
	r.stateButton.SetBackgroundColor(MenuColors.ButtonBG)

	r.log.Debug("replay ready", zap.Int("states", len(r.boardHistory)))
	return r, nil
}

func (r *ReplayGame) generateBoardStateHistory() error {
	for _, pair := range r.history {
		for _, m := range pair {
			r.newBoard.ApplyMove(m)
			r.boardHistory = append(r.boardHistory, replayFrame{
				viz:   VizState(r.newBoard, r.showLegalMoves).Clone(),
				state: r.newBoard.State().Clone(),
			})
		}
	}
	if len(r.boardHistory) == 0 {
		return ErrEmptyHistory
	}
	if !r.EqualBoardStates(r.game.State(), r.newBoard.State()) {
		return ErrInconsistentHistory
	}
	return nil
}

// Len returns the number of recorded states.
func (r *ReplayGame) Len() int {
	return len(r.boardHistory)
}

// Index returns the history entry on display.
func (r *ReplayGame) Index() int {
	return r.index
}

// Grid returns the board widget.
func (r *ReplayGame) Grid() *BoardGrid {
	return r.grid
}

// Slider returns the move slider.
func (r *ReplayGame) Slider() *MoveSlider {
	return r.slider
}

// Input returns the numeric field linked to the slider.
func (r *ReplayGame) Input() *tview.InputField {
	return r.input
}

// Output returns the board state panel.
func (r *ReplayGame) Output() *tview.TextView {
	return r.output
}

// VisualizedState returns the raw state of the entry on display, or nil
// before the first Update.
func (r *ReplayGame) VisualizedState() types.BoardState {
	return r.visualized
}

// Update paints history entry i, clamped to the recorded range, and keeps
// the slider and the numeric field in step.
func (r *ReplayGame) Update(i int) {
	if i < 0 {
		i = 0
	}
	if i > len(r.boardHistory)-1 {
		i = len(r.boardHistory) - 1
	}
	frame := r.boardHistory[i]
	r.visualized = frame.state
	r.index = i
	r.grid.SetState(frame.viz)

	if r.syncing {
		return
	}
	r.syncing = true
	defer func() { r.syncing = false }()
	r.slider.SetValue(i)
	if text := strconv.Itoa(i); r.input.GetText() != text {
		r.input.SetText(text)
	}
}

func (r *ReplayGame) onInputChanged(text string) {
	if r.syncing {
		return
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return
	}
	r.Update(v)
}

// EqualBoardStates compares two states cell by cell over the board size.
func (r *ReplayGame) EqualBoardStates(a, b types.BoardState) bool {
	h, w := r.game.Height(), r.game.Width()
	if len(a) < h || len(b) < h {
		return false
	}
	for row := 0; row < h; row++ {
		if len(a[row]) < w || len(b[row]) < w {
			return false
		}
		for col := 0; col < w; col++ {
			if a[row][col] != b[row][col] {
				return false
			}
		}
	}
	return true
}

// ShowBoardState replaces the output panel with the state on display.
func (r *ReplayGame) ShowBoardState() {
	r.output.Clear()
	if r.visualized == nil {
		fmt.Fprint(r.output, "None")
		return
	}
	fmt.Fprint(r.output, r.visualized.String())
}

// Show builds the viewer: the board above the index field and slider on
// the left, the state panel above its button on the right.
func (r *ReplayGame) Show() tview.Primitive {
	if r.layout != nil {
		return r.layout
	}
	w, h := r.grid.Size()

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(r.grid, h+2, 0, true).
		AddItem(r.input, 1, 0, false).
		AddItem(r.slider, 1, 0, false).
		AddItem(nil, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(r.output, 0, 1, false).
		AddItem(r.stateButton, 1, 0, false)

	hint := tview.NewTextView().
		SetText("tab: next control  left/right: step  enter: get board state  q: back")
	hint.SetTextColor(MenuColors.Hint)

	body := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(left, max(w+2, 30), 0, true).
		AddItem(right, 0, 1, false)

	r.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(hint, 1, 0, false)
	r.layout.SetInputCapture(r.handleKey)
	r.focusables = []tview.Primitive{r.slider, r.input, r.stateButton, r.grid}

	r.Update(r.slider.Value())
	return r.layout
}

func (r *ReplayGame) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		r.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		r.cycleFocus(-1)
		return nil
	}
	return event
}

func (r *ReplayGame) cycleFocus(dir int) {
	if r.app == nil || len(r.focusables) == 0 {
		return
	}
	current := 0
	for i, p := range r.focusables {
		if p.HasFocus() {
			current = i
			break
		}
	}
	next := (current + dir + len(r.focusables)) % len(r.focusables)
	r.app.SetFocus(r.focusables[next])
}

// Focus gives the slider the initial focus.
func (r *ReplayGame) Focus(app *tview.Application) {
	app.SetFocus(r.slider)
}
