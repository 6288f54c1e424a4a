package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.TimeLimit())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"game": {"width": 5, "height": 6, "piece_kind": "knight", "opponent": "random", "time_limit_ms": 250},
		"theme": {"colors": {"player1": "red"}}, "records_dir": "/tmp/records"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Game.Width)
	assert.Equal(t, 6, cfg.Game.Height)
	assert.Equal(t, "knight", cfg.Game.PieceKind)
	assert.Equal(t, "red", cfg.Theme.Colors.Player1)
	assert.Equal(t, DefaultTheme.Colors.Player2, cfg.Theme.Colors.Player2)
	assert.Equal(t, 250*time.Millisecond, cfg.TimeLimit())
	assert.Equal(t, "/tmp/records", cfg.Records())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad color":    `{"theme": {"colors": {"blocked": "not-a-color"}}}`,
		"bad size":     `{"game": {"width": 0}}`,
		"bad kind":     `{"game": {"piece_kind": "bishop"}}`,
		"exec no path": `{"game": {"opponent": "exec"}}`,
		"bad opponent": `{"game": {"opponent": "alphazero"}}`,
		"bad json":     `{"game": `,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(data), 0644))
			_, err := Load(path)
			var invalid *InvalidConfig
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig
	cfg.Game.Opponent = "mobility"
	require.NoError(t, saveCfgFile(path, &cfg, 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Game, loaded.Game)
	assert.Equal(t, cfg.Theme, loaded.Theme)
}

func TestSaveGameWritesLoadedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": {"colors": {"player1": "red"}}}`), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)

	d := cfg.Game
	d.Width, d.Height = 5, 4
	d.PieceKind = "knight"
	d.Opponent = "random"
	d.ShowLegalMoves = true
	require.NoError(t, cfg.SaveGame(d))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, d, loaded.Game)
	assert.Equal(t, "red", loaded.Theme.Colors.Player1, "the rest of the file survives")
}

func TestSaveGameRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)

	d := cfg.Game
	d.Opponent = "exec"
	var invalid *InvalidConfig
	assert.True(t, errors.As(cfg.SaveGame(d), &invalid))
	assert.Equal(t, DefaultConfig.Game, cfg.Game)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data), "nothing is written")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
