package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gookit/color"
	"golang.org/x/term"

	"isolation-viz/engine"
	"isolation-viz/types"
	"isolation-viz/ui"
)

// printReplay writes every state of a replay to w, one colored grid per move.
// Colors are only emitted when stdout is a terminal.
func printReplay(w io.Writer, b engine.Board, history []types.MovePair, showLegal bool) error {
	replay, err := ui.NewReplayGame(nil, b, history, showLegal, cfg, logger)
	if err != nil {
		return err
	}
	color.Enable = w == io.Writer(os.Stdout) && term.IsTerminal(int(os.Stdout.Fd()))

	palette := ui.NewPalette(cfg)
	moves := b.History()
	for i := 0; i < replay.Len(); i++ {
		replay.Update(i)
		player := "1"
		if i%2 == 1 {
			player = "2"
		}
		fmt.Fprintf(w, "move[%d]  player %s -> %d,%d\n", i, player, moves[i].Row, moves[i].Col)
		fmt.Fprint(w, renderState(replay.Grid().State(), palette))
		fmt.Fprintln(w)
	}
	return nil
}

// renderState draws each cell as a three column block in its cell color.
func renderState(s types.BoardState, p ui.Palette) string {
	var sb strings.Builder
	text := hexOf(p.Text)
	for _, row := range s {
		for _, token := range row {
			label, bg := p.CellDetails(token)
			cell := fmt.Sprintf("%-3s", label)
			if !color.Enable {
				cell = fmt.Sprintf("%-3s", plainLabel(token, label))
			}
			sb.WriteString(color.HEXStyle(text, hexOf(bg)).Sprint(cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// plainLabel keeps cells distinguishable without colors.
func plainLabel(token, label string) string {
	switch token {
	case types.Forcefield:
		return "O"
	case types.QueenHint1, types.KnightHint1, types.QueenHint2, types.KnightHint2:
		return "."
	case types.Empty:
		return "_"
	}
	return label
}

func hexOf(c tcell.Color) string {
	v := c.Hex()
	if v < 0 {
		return ""
	}
	return fmt.Sprintf("%06x", v)
}
