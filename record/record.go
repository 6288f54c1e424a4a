// Package record reads recorded isolation games for the replay viewer.
//
// A record is a JSON or YAML document:
//
//	{
//	  "width": 7, "height": 7, "piece_kind": "queen",
//	  "player1": "Player", "player2": "Random",
//	  "date": "2026-01-15", "result": "Player 1",
//	  "moves": [[[0, 0], [6, 6]], [[0, 3]]],
//	  "final_state": [["X", " ", ...], ...]
//	}
//
// moves is a list of rounds, each holding player 1's move and then player
// 2's as [row, col]. final_state is optional; when present the replay must
// end on exactly that grid.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"isolation-viz/engine"
	"isolation-viz/engine/isolation"
	"isolation-viz/types"
)

// ErrFinalStateMismatch is returned when replaying a record does not
// reproduce its recorded final state.
var ErrFinalStateMismatch = errors.New("replayed moves do not reproduce the recorded final state")

// ErrMovesAfterEnd is returned when a record holds moves past the end of the game.
var ErrMovesAfterEnd = errors.New("move recorded after the game ended")

// Record is a parsed game record.
type Record struct {
	FilePath   string
	FileName   string
	Width      int
	Height     int
	PieceKind  string
	Player1    string
	Player2    string
	Date       string
	Result     string
	Moves      []types.MovePair
	FinalState types.BoardState
}

type document struct {
	Width      int        `json:"width" yaml:"width"`
	Height     int        `json:"height" yaml:"height"`
	PieceKind  string     `json:"piece_kind" yaml:"piece_kind"`
	Player1    string     `json:"player1" yaml:"player1"`
	Player2    string     `json:"player2" yaml:"player2"`
	Date       string     `json:"date" yaml:"date"`
	Result     string     `json:"result" yaml:"result"`
	Moves      [][][]int  `json:"moves" yaml:"moves"`
	FinalState [][]string `json:"final_state" yaml:"final_state"`
}

// Load reads and parses a record file. The format follows the extension:
// .yaml and .yml are YAML, anything else JSON.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	rec.FilePath = path
	rec.FileName = filepath.Base(path)
	return rec, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// Parse decodes a record in the given format ("json" or "yaml").
func Parse(data []byte, format string) (*Record, error) {
	var doc document
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	case "json":
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unknown record format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s record: %w", format, err)
	}

	rec := &Record{
		Width:     doc.Width,
		Height:    doc.Height,
		PieceKind: doc.PieceKind,
		Player1:   doc.Player1,
		Player2:   doc.Player2,
		Date:      doc.Date,
		Result:    doc.Result,
	}
	if rec.Width == 0 {
		rec.Width = 7
	}
	if rec.Height == 0 {
		rec.Height = 7
	}
	if rec.PieceKind == "" {
		rec.PieceKind = "queen"
	}
	if rec.Player1 == "" {
		rec.Player1 = "Player 1"
	}
	if rec.Player2 == "" {
		rec.Player2 = "Player 2"
	}

	for i, pair := range doc.Moves {
		if len(pair) == 0 || len(pair) > 2 {
			return nil, fmt.Errorf("round %d: want 1 or 2 moves, got %d", i+1, len(pair))
		}
		var mp types.MovePair
		for _, coords := range pair {
			if len(coords) != 2 {
				return nil, fmt.Errorf("round %d: move must be [row, col]", i+1)
			}
			m := types.Move{Row: coords[0], Col: coords[1]}
			if !m.In(rec.Width, rec.Height) {
				return nil, fmt.Errorf("round %d: move %v is off the %dx%d board", i+1, m, rec.Width, rec.Height)
			}
			mp = append(mp, m)
		}
		if len(mp) == 1 && i != len(doc.Moves)-1 {
			return nil, fmt.Errorf("round %d: only the last round may hold a single move", i+1)
		}
		rec.Moves = append(rec.Moves, mp)
	}

	if doc.FinalState != nil {
		state := types.BoardState(doc.FinalState)
		if state.Height() != rec.Height || state.Width() != rec.Width {
			return nil, fmt.Errorf("final_state is %dx%d, board is %dx%d", state.Width(), state.Height(), rec.Width, rec.Height)
		}
		rec.FinalState = state
	}
	return rec, nil
}

// MoveCount returns the number of single moves in the record.
func (r *Record) MoveCount() int {
	n := 0
	for _, p := range r.Moves {
		n += len(p)
	}
	return n
}

// Board replays the record onto a fresh board for p1 and p2 and returns it.
// Moves recorded after the rules end the game are rejected.
func (r *Record) Board(p1, p2 engine.Player) (engine.Board, error) {
	kind, err := isolation.ParsePieceKind(r.PieceKind)
	if err != nil {
		return nil, err
	}
	b := isolation.NewBoard(p1, p2, isolation.WithSize(r.Width, r.Height), isolation.WithPieceKind(kind))
	n := 0
	for _, pair := range r.Moves {
		for _, m := range pair {
			n++
			if over, _ := b.IsOver(); over {
				return nil, fmt.Errorf("move %d %v: %w", n, m, ErrMovesAfterEnd)
			}
			if !engine.Contains(b.ActiveMoves(), m) {
				return nil, fmt.Errorf("move %d %v: %w", n, m, engine.ErrIllegalMove)
			}
			b.ApplyMove(m)
		}
	}
	if r.FinalState != nil && !r.FinalState.Equal(b.State()) {
		return nil, ErrFinalStateMismatch
	}
	return b, nil
}

// FromBoard groups a board's move history into rounds.
func FromBoard(b engine.Board) []types.MovePair {
	return Pair(b.History())
}

// Pair groups consecutive moves two by two.
func Pair(moves []types.Move) []types.MovePair {
	var pairs []types.MovePair
	for i := 0; i < len(moves); i += 2 {
		end := i + 2
		if end > len(moves) {
			end = len(moves)
		}
		pairs = append(pairs, append(types.MovePair(nil), moves[i:end]...))
	}
	return pairs
}

// List scans a directory for record files and returns them parsed, sorted
// newest-first by file name. Unreadable files are skipped.
func List(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read records dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var records []Record
	for _, name := range names {
		rec, err := Load(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}
