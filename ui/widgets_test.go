package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func TestMoveSliderSetValue(t *testing.T) {
	var changes []int
	s := NewMoveSlider("move[i]", 0, 5, func(v int) { changes = append(changes, v) })

	s.SetValue(3)
	s.SetValue(3)
	s.SetValue(9)
	s.SetValue(-1)
	assert.Equal(t, []int{3, 5, 0}, changes)
	assert.Equal(t, 0, s.Value())

	handler := s.InputHandler()
	noFocus := func(tview.Primitive) {}
	handler(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), noFocus)
	handler(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone), noFocus)
	handler(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), noFocus)
	assert.Equal(t, 4, s.Value())
	assert.Equal(t, []int{3, 5, 0, 1, 5, 4}, changes)
}

func TestMoveSliderValueAt(t *testing.T) {
	s := NewMoveSlider("i", 0, 10, nil)
	s.barX, s.barWidth = 10, 11
	v, ok := s.valueAt(10)
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	v, _ = s.valueAt(20)
	assert.Equal(t, 10, v)
	v, _ = s.valueAt(15)
	assert.Equal(t, 5, v)
	_, ok = s.valueAt(21)
	assert.False(t, ok)
}

func TestPieceButtonRow(t *testing.T) {
	var pressed []string
	row := NewPieceButtonRow(
		[]*PieceButton{NewPieceButton("K1"), NewPieceButton("white_queen_Q1")},
		tcell.ColorGreen,
		func(b *PieceButton) { pressed = append(pressed, b.Piece()) },
	)
	assert.Equal(t, "Q1", row.Buttons()[1].Label())

	assert.True(t, row.Press(1))
	assert.False(t, row.Press(2))
	row.SetVisible(false)
	assert.False(t, row.Press(0))
	assert.Equal(t, []string{"white_queen_Q1"}, pressed)

	empty := NewPieceButtonRow(nil, tcell.ColorGreen, nil)
	assert.False(t, empty.Visible())
}

func TestDebugOutput(t *testing.T) {
	d := NewDebugOutput(nil)
	assert.Empty(t, d.Lines())
	d.Print("Moving piece", "Q1", "to", 2, 3)
	d.Print("Player 1", "wins!")
	assert.Equal(t, []string{"Moving piece Q1 to 2 3", "Player 1 wins!"}, d.Lines())
	d.Clear()
	assert.Empty(t, d.Lines())
}

func TestGameInfoPanel(t *testing.T) {
	p := NewGameInfoPanel()
	assert.Empty(t, p.Text())

	b := humanBoard(4, 3)
	b.ApplyMove(mv(0, 0))
	b.ApplyMove(mv(2, 3))
	p.SetBoard(b)
	text := p.Text()
	assert.Contains(t, text, "Board: 4x3")
	assert.Contains(t, text, "1: one")
	assert.Contains(t, text, "Move: 2")
	assert.Contains(t, text, "2. 2 2,3")
}
