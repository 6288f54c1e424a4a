package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"isolation-viz/config"
	"isolation-viz/types"
)

// BoardGrid draws a board state as a grid of colored cells. Cells can be
// clicked with the mouse or picked with the cursor keys and Enter.
type BoardGrid struct {
	*tview.Box
	state      types.BoardState
	palette    Palette
	cellWidth  int
	cellHeight int
	gap        int
	selRow     int
	selCol     int
	onClick    func(row, col int)
}

// NewBoardGrid creates an empty grid themed from c.
func NewBoardGrid(c *config.Config) *BoardGrid {
	g := &BoardGrid{
		Box:    tview.NewBox(),
		selRow: -1,
		selCol: -1,
	}
	g.SetConfig(c)
	return g
}

// SetConfig applies the theme of c.
func (g *BoardGrid) SetConfig(c *config.Config) {
	g.palette = NewPalette(c)
	g.cellWidth = c.Theme.CellWidth
	g.cellHeight = c.Theme.CellHeight
	g.gap = c.Theme.GridGap
}

// SetState replaces the drawn state. The grid keeps its own copy.
func (g *BoardGrid) SetState(s types.BoardState) *BoardGrid {
	g.state = s.Clone()
	if g.selRow >= s.Height() || g.selCol >= s.Width() {
		g.ResetSelection()
	}
	return g
}

// State returns the drawn state.
func (g *BoardGrid) State() types.BoardState {
	return g.state.Clone()
}

// Cell returns the label and color currently drawn at (row, col).
func (g *BoardGrid) Cell(row, col int) (string, tcell.Color) {
	return g.palette.CellDetails(g.state[row][col])
}

// SetClickFunc sets the handler called with the row and column of a
// clicked cell.
func (g *BoardGrid) SetClickFunc(fn func(row, col int)) *BoardGrid {
	g.onClick = fn
	return g
}

// Click activates the cell at (row, col) as if it had been clicked.
func (g *BoardGrid) Click(row, col int) {
	if row < 0 || col < 0 || row >= g.state.Height() || col >= g.state.Width() {
		return
	}
	if g.onClick != nil {
		g.onClick(row, col)
	}
}

// Size returns the screen size of the grid without border.
func (g *BoardGrid) Size() (width, height int) {
	w, h := g.state.Width(), g.state.Height()
	if w == 0 || h == 0 {
		return 0, 0
	}
	return w*g.cellWidth + (w-1)*g.gap, h*g.cellHeight + (h-1)*g.gap
}

// SelectedCell returns the cursor position, if any.
func (g *BoardGrid) SelectedCell() (types.Move, bool) {
	if g.selRow == -1 && g.selCol == -1 {
		return types.NoMove, false
	}
	return types.Move{Row: g.selRow, Col: g.selCol}, true
}

// MoveSelection moves the cursor by (dr, dc). The first call places it in
// the center of the board.
func (g *BoardGrid) MoveSelection(dr, dc int) {
	if g.state.Width() == 0 {
		return
	}
	if _, ok := g.SelectedCell(); !ok {
		g.selRow = g.state.Height() / 2
		g.selCol = g.state.Width() / 2
		return
	}
	next := types.Move{Row: g.selRow + dr, Col: g.selCol + dc}
	if !next.In(g.state.Width(), g.state.Height()) {
		return
	}
	g.selRow, g.selCol = next.Row, next.Col
}

// ResetSelection hides the cursor.
func (g *BoardGrid) ResetSelection() {
	g.selRow = -1
	g.selCol = -1
}

// CellAt maps a screen position to a cell.
func (g *BoardGrid) CellAt(x, y int) (row, col int, ok bool) {
	ix, iy, _, _ := g.GetInnerRect()
	dx, dy := x-ix, y-iy
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	stepX, stepY := g.cellWidth+g.gap, g.cellHeight+g.gap
	col, row = dx/stepX, dy/stepY
	if dx%stepX >= g.cellWidth || dy%stepY >= g.cellHeight {
		return 0, 0, false
	}
	if row >= g.state.Height() || col >= g.state.Width() {
		return 0, 0, false
	}
	return row, col, true
}

// Draw renders the grid.
func (g *BoardGrid) Draw(screen tcell.Screen) {
	g.Box.DrawForSubclass(screen, g)
	ix, iy, iw, ih := g.GetInnerRect()

	for r := 0; r < g.state.Height(); r++ {
		for c := 0; c < g.state.Width(); c++ {
			label, bg := g.palette.CellDetails(g.state[r][c])
			fg := g.palette.Text
			if bg == g.palette.Text {
				fg = tcell.ColorBlack
			}
			style := tcell.StyleDefault.Background(bg).Foreground(fg)
			if r == g.selRow && c == g.selCol {
				style = style.Background(g.palette.Cursor).Bold(true)
			}

			left := ix + c*(g.cellWidth+g.gap)
			top := iy + r*(g.cellHeight+g.gap)
			for dy := 0; dy < g.cellHeight; dy++ {
				for dx := 0; dx < g.cellWidth; dx++ {
					if left+dx >= ix+iw || top+dy >= iy+ih {
						continue
					}
					screen.SetContent(left+dx, top+dy, ' ', nil, style)
				}
			}

			// Label centered in the middle row
			runes := []rune(label)
			lx := left + (g.cellWidth-len(runes))/2
			ly := top + (g.cellHeight-1)/2
			for i, ch := range runes {
				if lx+i < left || lx+i >= left+g.cellWidth || lx+i >= ix+iw || ly >= iy+ih {
					continue
				}
				screen.SetContent(lx+i, ly, ch, nil, style)
			}
		}
	}
}

// InputHandler moves the cursor with arrows or hjkl and clicks with Enter.
func (g *BoardGrid) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return g.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			g.MoveSelection(-1, 0)
		case tcell.KeyDown:
			g.MoveSelection(1, 0)
		case tcell.KeyLeft:
			g.MoveSelection(0, -1)
		case tcell.KeyRight:
			g.MoveSelection(0, 1)
		case tcell.KeyEscape:
			g.ResetSelection()
		case tcell.KeyEnter:
			if sel, ok := g.SelectedCell(); ok {
				g.Click(sel.Row, sel.Col)
			}
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				g.MoveSelection(0, -1)
			case 'j':
				g.MoveSelection(1, 0)
			case 'k':
				g.MoveSelection(-1, 0)
			case 'l':
				g.MoveSelection(0, 1)
			case ' ':
				if sel, ok := g.SelectedCell(); ok {
					g.Click(sel.Row, sel.Col)
				}
			}
		}
	})
}

// MouseHandler clicks the cell under a left click.
func (g *BoardGrid) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return g.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !g.InRect(x, y) {
			return false, nil
		}
		if action == tview.MouseLeftClick {
			setFocus(g)
			if row, col, ok := g.CellAt(x, y); ok {
				g.selRow, g.selCol = row, col
				g.Click(row, col)
			}
			return true, nil
		}
		return false, nil
	})
}
