package record

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"isolation-viz/engine"
	"isolation-viz/types"
)

const testJSON = `{"width": 3, "height": 3, "piece_kind": "queen",
	"player1": "Player", "player2": "Random", "date": "2026-01-15", "result": "?",
	"moves": [[[0, 0], [2, 2]], [[0, 2], [2, 0]]],
	"final_state": [["X", "O", "Q1"], [" ", " ", " "], ["Q2", "O", "X"]]}`

const testYAML = `width: 3
height: 3
moves:
  - [[0, 0], [2, 2]]
  - [[0, 2]]
`

func writeTempRecord(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp record: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeTempRecord(t, t.TempDir(), "game.json", testJSON)

	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Width != 3 || rec.Height != 3 {
		t.Errorf("size = %dx%d, want 3x3", rec.Width, rec.Height)
	}
	if rec.Player1 != "Player" || rec.Player2 != "Random" {
		t.Errorf("players = %q, %q", rec.Player1, rec.Player2)
	}
	if rec.FileName != "game.json" {
		t.Errorf("FileName = %q", rec.FileName)
	}
	if rec.MoveCount() != 4 {
		t.Errorf("MoveCount = %d, want 4", rec.MoveCount())
	}
	if rec.Moves[1][0] != (types.Move{Row: 0, Col: 2}) {
		t.Errorf("Moves[1][0] = %v", rec.Moves[1][0])
	}
	if rec.FinalState == nil {
		t.Fatal("FinalState should be parsed")
	}
}

func TestLoadYAMLDefaults(t *testing.T) {
	path := writeTempRecord(t, t.TempDir(), "game.yaml", testYAML)

	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.PieceKind != "queen" {
		t.Errorf("PieceKind = %q, want queen", rec.PieceKind)
	}
	if rec.Player1 != "Player 1" || rec.Player2 != "Player 2" {
		t.Errorf("default players = %q, %q", rec.Player1, rec.Player2)
	}
	if rec.MoveCount() != 3 {
		t.Errorf("MoveCount = %d, want 3", rec.MoveCount())
	}
	if len(rec.Moves[1]) != 1 {
		t.Errorf("last round should hold one move, got %d", len(rec.Moves[1]))
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"off board":        `{"width": 3, "height": 3, "moves": [[[3, 0], [0, 0]]]}`,
		"short coords":     `{"moves": [[[1], [0, 0]]]}`,
		"empty round":      `{"moves": [[]]}`,
		"three moves":      `{"moves": [[[0, 0], [1, 1], [2, 2]]]}`,
		"single mid-game":  `{"moves": [[[0, 0]], [[1, 1], [2, 2]]]}`,
		"final state size": `{"width": 2, "height": 2, "moves": [], "final_state": [[" "]]}`,
		"not json":         `moves: []`,
	}
	for name, data := range tests {
		if _, err := Parse([]byte(data), "json"); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := Parse([]byte(`{}`), "toml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestBoardReplaysRecord(t *testing.T) {
	rec, err := Parse([]byte(testJSON), "json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := rec.Board(engine.NewHumanPlayer("a"), engine.NewHumanPlayer("b"))
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if b.MoveCount() != 4 {
		t.Errorf("MoveCount = %d, want 4", b.MoveCount())
	}
	if !b.State().Equal(rec.FinalState) {
		t.Errorf("state = %v, want %v", b.State(), rec.FinalState)
	}
}

func TestBoardDetectsMismatch(t *testing.T) {
	rec, err := Parse([]byte(testJSON), "json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rec.FinalState[1][1] = "X"
	_, err = rec.Board(engine.NewHumanPlayer("a"), engine.NewHumanPlayer("b"))
	if !errors.Is(err, ErrFinalStateMismatch) {
		t.Errorf("err = %v, want ErrFinalStateMismatch", err)
	}
}

func TestBoardRejectsIllegalMove(t *testing.T) {
	rec, err := Parse([]byte(`{"width": 3, "height": 3, "moves": [[[1, 1], [1, 1]]]}`), "json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = rec.Board(engine.NewHumanPlayer("a"), engine.NewHumanPlayer("b"))
	if !errors.Is(err, engine.ErrIllegalMove) {
		t.Errorf("err = %v, want ErrIllegalMove", err)
	}
}

func TestBoardRejectsMovesAfterEnd(t *testing.T) {
	rec, err := Parse([]byte(`{"width": 2, "height": 1, "moves": [[[0, 0], [0, 1]], [[0, 0]]]}`), "json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = rec.Board(engine.NewHumanPlayer("a"), engine.NewHumanPlayer("b"))
	if !errors.Is(err, ErrMovesAfterEnd) {
		t.Errorf("err = %v, want ErrMovesAfterEnd", err)
	}
}

func TestPair(t *testing.T) {
	moves := []types.Move{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}
	pairs := Pair(moves)
	if len(pairs) != 2 {
		t.Fatalf("len = %d, want 2", len(pairs))
	}
	if len(pairs[0]) != 2 || len(pairs[1]) != 1 {
		t.Errorf("pairs = %v", pairs)
	}
	if Pair(nil) != nil {
		t.Error("Pair(nil) should be nil")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeTempRecord(t, dir, "2026-01-01_game.json", testJSON)
	writeTempRecord(t, dir, "2026-02-01_game.yml", testYAML)
	writeTempRecord(t, dir, "notes.txt", "ignored")
	writeTempRecord(t, dir, "2026-03-01_broken.json", "{")

	records, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].FileName != "2026-02-01_game.yml" {
		t.Errorf("newest first: got %q", records[0].FileName)
	}

	missing, err := List(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Errorf("missing dir: %v, %v", missing, err)
	}
}
