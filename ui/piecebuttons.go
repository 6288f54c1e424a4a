package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PieceButton lets a player pick which of their pieces to move.
type PieceButton struct {
	label   string
	piece   string
	success bool
	x       int
	width   int
}

// NewPieceButton creates a button labelled with the last two characters of
// the piece name.
func NewPieceButton(piece string) *PieceButton {
	label := piece
	if len(label) > 2 {
		label = label[len(label)-2:]
	}
	return &PieceButton{label: label, piece: piece}
}

// Label returns the text shown on the button.
func (b *PieceButton) Label() string {
	return b.label
}

// Piece returns the piece the button selects.
func (b *PieceButton) Piece() string {
	return b.piece
}

// SetSuccess toggles the highlight used for the selected piece.
func (b *PieceButton) SetSuccess(on bool) {
	b.success = on
}

// Success reports whether the button is highlighted.
func (b *PieceButton) Success() bool {
	return b.success
}

// Draw renders the button at the given position.
// Returns the width used.
func (b *PieceButton) Draw(screen tcell.Screen, x, y int, selected tcell.Color) int {
	padding := 4
	width := len([]rune(b.label)) + padding*2
	b.x, b.width = x, width

	style := tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonBG)
	if b.success {
		style = style.Background(selected).Bold(true)
	}
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
	col := x + padding
	for _, ch := range b.label {
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
	return width
}

func (b *PieceButton) contains(x int) bool {
	return x >= b.x && x < b.x+b.width
}

// PieceButtonRow is a horizontal row of piece buttons for one player.
type PieceButtonRow struct {
	*tview.Box
	buttons  []*PieceButton
	visible  bool
	selected tcell.Color
	onSelect func(b *PieceButton)
}

// NewPieceButtonRow creates a row; onSelect is called with the clicked button.
func NewPieceButtonRow(buttons []*PieceButton, selected tcell.Color, onSelect func(b *PieceButton)) *PieceButtonRow {
	return &PieceButtonRow{
		Box:      tview.NewBox(),
		buttons:  buttons,
		visible:  true,
		selected: selected,
		onSelect: onSelect,
	}
}

// Buttons returns the buttons in display order.
func (r *PieceButtonRow) Buttons() []*PieceButton {
	return r.buttons
}

// SetVisible shows or hides the row.
func (r *PieceButtonRow) SetVisible(v bool) {
	r.visible = v
}

// Visible reports whether the row is shown. An empty row is never shown.
func (r *PieceButtonRow) Visible() bool {
	return r.visible && len(r.buttons) > 0
}

// Press triggers the n-th button (0-based) if the row is visible.
func (r *PieceButtonRow) Press(n int) bool {
	if !r.Visible() || n < 0 || n >= len(r.buttons) {
		return false
	}
	if r.onSelect != nil {
		r.onSelect(r.buttons[n])
	}
	return true
}

// Draw renders the visible buttons separated by one column.
func (r *PieceButtonRow) Draw(screen tcell.Screen) {
	r.Box.DrawForSubclass(screen, r)
	if !r.Visible() {
		return
	}
	x, y, _, _ := r.GetInnerRect()
	for _, b := range r.buttons {
		x += b.Draw(screen, x, y, r.selected) + 1
	}
}

// MouseHandler presses the button under a left click.
func (r *PieceButtonRow) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return r.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !r.InRect(x, y) || action != tview.MouseLeftClick || !r.Visible() {
			return false, nil
		}
		for i, b := range r.buttons {
			if b.contains(x) {
				r.Press(i)
				return true, nil
			}
		}
		return false, nil
	})
}
