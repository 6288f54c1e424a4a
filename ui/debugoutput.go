package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// DebugOutput is a scrolling text panel that mirrors its lines to the log.
type DebugOutput struct {
	view *tview.TextView
	log  *zap.Logger
}

// NewDebugOutput creates the panel. A nil logger discards log output.
func NewDebugOutput(log *zap.Logger) *DebugOutput {
	if log == nil {
		log = zap.NewNop()
	}
	view := tview.NewTextView()
	view.SetBorder(true)
	view.SetTitle(" Debug ")
	view.SetTitleAlign(tview.AlignLeft)
	view.SetBorderPadding(0, 0, 1, 1)
	view.SetScrollable(true)
	view.SetTextColor(MenuColors.Label)
	view.SetBorderColor(MenuColors.Border)
	return &DebugOutput{view: view, log: log}
}

// View returns the underlying tview component.
func (d *DebugOutput) View() *tview.TextView {
	return d.view
}

// Print appends its arguments separated by spaces, like fmt.Println.
func (d *DebugOutput) Print(args ...any) {
	line := strings.TrimSuffix(fmt.Sprintln(args...), "\n")
	fmt.Fprintln(d.view, line)
	d.view.ScrollToEnd()
	d.log.Debug(line)
}

// Lines returns the printed lines.
func (d *DebugOutput) Lines() []string {
	text := strings.TrimRight(d.view.GetText(true), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Clear empties the panel.
func (d *DebugOutput) Clear() {
	d.view.Clear()
}
