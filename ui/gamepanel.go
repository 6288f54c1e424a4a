package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"isolation-viz/engine"
)

// GameInfoPanel displays game information and move history alongside the board.
type GameInfoPanel struct {
	box   *tview.TextView
	board engine.Board
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoard updates the panel with the current board.
func (p *GameInfoPanel) SetBoard(b engine.Board) {
	p.board = b
	p.refresh()
}

// Text returns the panel text without color tags.
func (p *GameInfoPanel) Text() string {
	return p.box.GetText(true)
}

func (p *GameInfoPanel) refresh() {
	if p.board == nil {
		p.box.SetText("")
		return
	}
	b := p.board

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Board:[-:-:-] %dx%d\n", b.Width(), b.Height())
	text += fmt.Sprintf("[white]1:[-:-:-] %s\n", tview.Escape(b.Player1().Name()))
	text += fmt.Sprintf("[white]2:[-:-:-] %s\n", tview.Escape(b.Player2().Name()))
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", b.MoveCount())

	moves := b.History()
	if len(moves) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		// Show last N moves that fit
		maxVisible := 12
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
		}

		for i := start; i < len(moves); i++ {
			player := "[white]1[-]"
			if i%2 == 1 {
				player = "[dimgray]2[-]"
			}
			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}
			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %d,%d\n", marker, i+1, player, moves[i].Row, moves[i].Col)
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text)
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}
