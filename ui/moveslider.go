package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MoveSlider is a horizontal slider for picking a move index.
type MoveSlider struct {
	*tview.Box
	label    string
	min      int
	max      int
	value    int
	barX     int
	barWidth int
	onChange func(int)
}

// NewMoveSlider creates a slider over [min, max].
func NewMoveSlider(label string, min, max int, onChange func(int)) *MoveSlider {
	if max < min {
		max = min
	}
	return &MoveSlider{
		Box:      tview.NewBox(),
		label:    label,
		min:      min,
		max:      max,
		value:    min,
		onChange: onChange,
	}
}

// Value returns the current slider value.
func (s *MoveSlider) Value() int {
	return s.value
}

// Range returns the slider bounds.
func (s *MoveSlider) Range() (min, max int) {
	return s.min, s.max
}

// SetValue moves the slider, clamped to its range. The change handler only
// runs when the value actually changes.
func (s *MoveSlider) SetValue(v int) {
	if v < s.min {
		v = s.min
	}
	if v > s.max {
		v = s.max
	}
	if v == s.value {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(v)
	}
}

// InputHandler steps with the arrow keys and jumps with Home, End and the
// page keys.
func (s *MoveSlider) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		step := (s.max - s.min) / 10
		if step < 1 {
			step = 1
		}
		switch event.Key() {
		case tcell.KeyLeft:
			s.SetValue(s.value - 1)
		case tcell.KeyRight:
			s.SetValue(s.value + 1)
		case tcell.KeyPgUp:
			s.SetValue(s.value - step)
		case tcell.KeyPgDn:
			s.SetValue(s.value + step)
		case tcell.KeyHome:
			s.SetValue(s.min)
		case tcell.KeyEnd:
			s.SetValue(s.max)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				s.SetValue(s.value - 1)
			case 'l':
				s.SetValue(s.value + 1)
			}
		}
	})
}

// valueAt maps a column inside the bar to a slider value.
func (s *MoveSlider) valueAt(x int) (int, bool) {
	if s.barWidth <= 0 || x < s.barX || x >= s.barX+s.barWidth {
		return 0, false
	}
	if s.barWidth == 1 {
		return s.min, true
	}
	span := s.max - s.min
	return s.min + ((x-s.barX)*span+(s.barWidth-1)/2)/(s.barWidth-1), true
}

// MouseHandler sets the value under a left click on the bar.
func (s *MoveSlider) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return s.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !s.InRect(x, y) {
			return false, nil
		}
		switch action {
		case tview.MouseLeftClick:
			setFocus(s)
			if v, ok := s.valueAt(x); ok {
				s.SetValue(v)
			}
			return true, nil
		case tview.MouseScrollUp:
			s.SetValue(s.value - 1)
			return true, nil
		case tview.MouseScrollDown:
			s.SetValue(s.value + 1)
			return true, nil
		}
		return false, nil
	})
}

// Draw renders: label ◀ ████░░░░ ▶ value.
func (s *MoveSlider) Draw(screen tcell.Screen) {
	s.Box.DrawForSubclass(screen, s)
	x, y, width, height := s.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected)
	arrowStyle := unselectedStyle
	if s.HasFocus() {
		arrowStyle = selectedStyle
	}

	col := x
	for _, ch := range s.label {
		screen.SetContent(col, y, ch, nil, labelStyle)
		col++
	}
	col++

	valueStr := fmt.Sprintf("%d/%d", s.value, s.max)
	screen.SetContent(col, y, '◀', nil, arrowStyle)
	col += 2

	s.barX = col
	s.barWidth = x + width - col - len(valueStr) - 3
	if s.barWidth < 1 {
		s.barWidth = 0
	}
	filled := s.barWidth
	if span := s.max - s.min; span > 0 {
		filled = (s.value - s.min) * s.barWidth / span
	}
	for i := 0; i < s.barWidth; i++ {
		char, style := '░', unselectedStyle
		if i < filled || (i == 0 && s.barWidth > 0) {
			char, style = '█', selectedStyle
		}
		screen.SetContent(col, y, char, nil, style)
		col++
	}
	col++

	screen.SetContent(col, y, '▶', nil, arrowStyle)
	col += 2
	for _, ch := range valueStr {
		if col >= x+width {
			break
		}
		screen.SetContent(col, y, ch, nil, labelStyle)
		col++
	}
}
