package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"isolation-viz/engine"
)

// Opponents lists the opponent choices in setup order.
var Opponents = []string{"none", "random", "mobility", "exec"}

var opponentLabels = []string{"Human (hot seat)", "Random", "Mobility", "External engine"}

// PieceKinds lists the piece kinds in setup order.
var PieceKinds = []string{"queen", "knight"}

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form      *tview.Form
	flex      *tview.Flex
	onStart   func(engine.GameConfig)
	onCancel  func()
	onReplays func()

	gameCfg engine.GameConfig
}

// NewGameSetup creates a new game setup form starting from defaults.
func NewGameSetup(defaults engine.GameConfig, onStart func(engine.GameConfig), onCancel func(), onReplays func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:   onStart,
		onCancel:  onCancel,
		onReplays: onReplays,
		gameCfg:   defaults,
	}

	form := tview.NewForm()

	form.AddInputField("Width", strconv.Itoa(defaults.Width), 4, tview.InputFieldInteger, func(text string) {
		if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			setup.gameCfg.Width = val
		}
	})
	form.AddInputField("Height", strconv.Itoa(defaults.Height), 4, tview.InputFieldInteger, func(text string) {
		if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			setup.gameCfg.Height = val
		}
	})

	form.AddDropDown("Pieces", PieceKinds, indexOf(PieceKinds, defaults.PieceKind), func(option string, index int) {
		setup.gameCfg.PieceKind = option
	})

	form.AddDropDown("Opponent", opponentLabels, indexOf(Opponents, defaults.Opponent), func(option string, index int) {
		if index >= 0 {
			setup.gameCfg.Opponent = Opponents[index]
		}
	})

	form.AddInputField("Engine", defaults.EnginePath, 30, nil, func(text string) {
		setup.gameCfg.EnginePath = strings.TrimSpace(text)
	})

	form.AddCheckbox("Show legal moves", defaults.ShowLegalMoves, func(checked bool) {
		setup.gameCfg.ShowLegalMoves = checked
	})

	form.AddButton("Start Game", func() {
		onStart(setup.gameCfg)
	})

	form.AddButton("Replays", func() {
		if onReplays != nil {
			onReplays()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

func indexOf(options []string, value string) int {
	for i, o := range options {
		if strings.EqualFold(o, value) {
			return i
		}
	}
	return 0
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// Config returns the game configuration currently entered in the form.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.gameCfg
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
