package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"isolation-viz/config"
	"isolation-viz/engine"
	"isolation-viz/record"
	"isolation-viz/types"
)

// ReplayBrowserUI lists recorded games and opens them in the replay viewer.
type ReplayBrowserUI struct {
	flex     *tview.Flex
	gameList *tview.List
	preview  *tview.Box
	hint     *tview.TextView
	palette  Palette
	dir      string
	records  []record.Record
	finals   map[int]types.BoardState // cached final positions
	selected int
	onOpen   func(rec *record.Record)
	onDone   func()
}

// NewReplayBrowser creates a browser over the record directory of cfg.
func NewReplayBrowser(cfg *config.Config, onOpen func(rec *record.Record), onDone func()) *ReplayBrowserUI {
	rb := &ReplayBrowserUI{
		palette: NewPalette(cfg),
		dir:     cfg.Records(),
		finals:  make(map[int]types.BoardState),
		onOpen:  onOpen,
		onDone:  onDone,
	}

	// Game list (left panel)
	rb.gameList = tview.NewList()
	rb.gameList.SetBorder(true)
	rb.gameList.SetTitle(" Recorded Games ")
	rb.gameList.ShowSecondaryText(false)
	rb.gameList.SetHighlightFullLine(true)
	rb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	rb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonBG))

	// Preview box (right panel)
	rb.preview = tview.NewBox()
	rb.preview.SetBorder(true)
	rb.preview.SetTitle(" Preview ")
	rb.preview.SetDrawFunc(rb.drawPreview)

	rb.hint = tview.NewTextView()
	rb.hint.SetDynamicColors(true)
	rb.hint.SetBorder(false)

	rb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		rb.selected = index
	})
	rb.gameList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		rb.open(index)
	})
	rb.gameList.SetInputCapture(rb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(rb.gameList, 42, 0, true).
		AddItem(rb.preview, 0, 1, false)

	rb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(rb.hint, 1, 0, false)

	rb.loadGames()
	return rb
}

// Flex returns the flex container for this UI.
func (rb *ReplayBrowserUI) Flex() *tview.Flex {
	return rb.flex
}

// Records returns the listed records.
func (rb *ReplayBrowserUI) Records() []record.Record {
	return rb.records
}

// Refresh reloads the record list from disk.
func (rb *ReplayBrowserUI) Refresh() {
	rb.finals = make(map[int]types.BoardState)
	rb.loadGames()
}

func (rb *ReplayBrowserUI) loadGames() {
	rb.gameList.Clear()
	rb.records = nil
	rb.selected = 0
	rb.hint.SetText(fmt.Sprintf("  [dimgray]enter[-] open  [dimgray]q[-] back  [dimgray]%s[-]", rb.dir))

	records, err := record.List(rb.dir)
	if err != nil {
		rb.hint.SetText(fmt.Sprintf("  [red]%s[-]", tview.Escape(err.Error())))
	}
	if len(records) == 0 {
		rb.gameList.AddItem("[dimgray]No games found[-]", "", 0, nil)
		return
	}

	rb.records = records
	for _, r := range records {
		result := r.Result
		if result == "" || result == "?" {
			result = "..."
		}
		label := fmt.Sprintf("%s  %dx%d  %s", r.FileName, r.Width, r.Height, result)
		rb.gameList.AddItem(tview.Escape(label), "", 0, nil)
	}
}

func (rb *ReplayBrowserUI) open(index int) {
	if index < 0 || index >= len(rb.records) || rb.onOpen == nil {
		return
	}
	rb.onOpen(&rb.records[index])
}

func (rb *ReplayBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if rb.onDone != nil {
			rb.onDone()
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if rb.onDone != nil {
				rb.onDone()
			}
			return nil
		case 'r':
			rb.Refresh()
			return nil
		}
	}
	return event
}

// finalState replays the selected record once and caches the result.
func (rb *ReplayBrowserUI) finalState(index int) types.BoardState {
	if s, ok := rb.finals[index]; ok {
		return s
	}
	rec := &rb.records[index]
	var s types.BoardState
	if rec.FinalState != nil {
		s = rec.FinalState
	} else if b, err := rec.Board(engine.NewHumanPlayer(rec.Player1), engine.NewHumanPlayer(rec.Player2)); err == nil {
		s = b.State()
	}
	rb.finals[index] = s
	return s
}

// drawPreview renders a mini board preview and game metadata.
func (rb *ReplayBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if rb.selected < 0 || rb.selected >= len(rb.records) {
		return x, y, width, height
	}
	rec := rb.records[rb.selected]
	board := rb.finalState(rb.selected)

	startX := x + 2
	startY := y + 1
	infoY := startY

	if board != nil && width >= board.Width()*2+4 && height >= board.Height()+7 {
		for r := 0; r < board.Height(); r++ {
			for c := 0; c < board.Width(); c++ {
				label, bg := rb.palette.CellDetails(board[r][c])
				style := tcell.StyleDefault.Background(bg).Foreground(rb.palette.Text)
				ch := ' '
				if label != " " && label != "" {
					ch = []rune(label)[len([]rune(label))-1]
				}
				screen.SetContent(startX+c*2, startY+r, ch, nil, style)
				screen.SetContent(startX+c*2+1, startY+r, ' ', nil, style)
			}
		}
		infoY = startY + board.Height() + 1
	}

	infoStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	dimStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(245))

	drawText(screen, startX, infoY, fmt.Sprintf("%dx%d %s", rec.Width, rec.Height, rec.PieceKind), infoStyle)
	drawText(screen, startX+12, infoY, fmt.Sprintf("| %d moves", rec.MoveCount()), dimStyle)
	infoY++
	drawText(screen, startX, infoY, fmt.Sprintf("1: %s", rec.Player1), dimStyle)
	infoY++
	drawText(screen, startX, infoY, fmt.Sprintf("2: %s", rec.Player2), dimStyle)
	infoY++
	if rec.Date != "" {
		drawText(screen, startX, infoY, rec.Date, dimStyle)
		infoY++
	}
	result := rec.Result
	if result == "" || result == "?" {
		result = "Unfinished"
	}
	resultStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(109))
	drawText(screen, startX, infoY, fmt.Sprintf("Result: %s", result), resultStyle)

	return x, y, width, height
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
