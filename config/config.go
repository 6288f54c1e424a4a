package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
)

var (
	cfgFile    = "isolation-viz/config.json"
	logFile    = "isolation-viz/debug.log"
	recordsDir = "isolation-viz/records"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors holds cell colors as "#rrggbb" or tcell color names.
type ConfigColors struct {
	Player1     string `json:"player1"`
	Player2     string `json:"player2"`
	Player1Hint string `json:"player1_hint"`
	Player2Hint string `json:"player2_hint"`
	Blocked     string `json:"blocked"`
	Forcefield  string `json:"forcefield"`
	Empty       string `json:"empty"`
	Text        string `json:"text"`
	Cursor      string `json:"cursor"`
	Selected    string `json:"selected"`
}

type Theme struct {
	CellWidth  int          `json:"cell_width"`
	CellHeight int          `json:"cell_height"`
	GridGap    int          `json:"grid_gap"`
	Colors     ConfigColors `json:"colors"`
}

// GameDefaults seed the setup screen and the play command's flags.
type GameDefaults struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	PieceKind      string `json:"piece_kind"`
	Opponent       string `json:"opponent"`
	EnginePath     string `json:"engine_path"`
	ShowLegalMoves bool   `json:"show_legal_moves"`
	TimeLimitMs    int    `json:"time_limit_ms"`
}

type Config struct {
	Theme      Theme        `json:"theme"`
	Game       GameDefaults `json:"game"`
	RecordsDir string       `json:"records_dir"`
	LogFile    string       `json:"log_file"`

	// path is the file the config was read from, and where Save writes.
	path string
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
		config.path = absPath
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads a config file at an explicit path on top of the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.path = path
	return &config, nil
}

func (c *Config) Validate() error {
	colors := map[string]string{
		"player1":      c.Theme.Colors.Player1,
		"player2":      c.Theme.Colors.Player2,
		"player1_hint": c.Theme.Colors.Player1Hint,
		"player2_hint": c.Theme.Colors.Player2Hint,
		"blocked":      c.Theme.Colors.Blocked,
		"forcefield":   c.Theme.Colors.Forcefield,
		"empty":        c.Theme.Colors.Empty,
		"text":         c.Theme.Colors.Text,
		"cursor":       c.Theme.Colors.Cursor,
		"selected":     c.Theme.Colors.Selected,
	}
	for name, v := range colors {
		if tcell.GetColor(v) == tcell.ColorDefault {
			return &InvalidConfig{fmt.Sprintf("color %s: %q is not a color", name, v)}
		}
	}
	if c.Theme.CellWidth < 1 || c.Theme.CellHeight < 1 || c.Theme.GridGap < 0 {
		return &InvalidConfig{"cell size must be positive and grid gap non-negative"}
	}
	if c.Game.Width < 1 || c.Game.Height < 1 || c.Game.Width > 25 || c.Game.Height > 25 {
		return &InvalidConfig{"board dimensions must be between 1 and 25"}
	}
	switch c.Game.PieceKind {
	case "queen", "knight":
	default:
		return &InvalidConfig{fmt.Sprintf("unknown piece kind %q", c.Game.PieceKind)}
	}
	switch c.Game.Opponent {
	case "none", "random", "mobility":
	case "exec":
		if c.Game.EnginePath == "" {
			return &InvalidConfig{"opponent \"exec\" needs engine_path"}
		}
	default:
		return &InvalidConfig{fmt.Sprintf("unknown opponent %q", c.Game.Opponent)}
	}
	if c.Game.TimeLimitMs <= 0 {
		return &InvalidConfig{"time_limit_ms must be positive"}
	}
	return nil
}

// TimeLimit returns the opponent's thinking budget.
func (c *Config) TimeLimit() time.Duration {
	return time.Duration(c.Game.TimeLimitMs) * time.Millisecond
}

// Records returns the directory the replay browser lists.
func (c *Config) Records() string {
	if c.RecordsDir != "" {
		return c.RecordsDir
	}
	return filepath.Join(xdg.DataHome, recordsDir)
}

// LogPath returns the debug log location, creating its directory.
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	return xdg.CacheFile(logFile)
}

// Save writes the config back to the file it was loaded from, or to the
// xdg config dir when it came from the defaults.
func (c *Config) Save() error {
	absPath := c.path
	if absPath == "" {
		var err error
		absPath, err = xdg.ConfigFile(cfgFile)
		if err != nil {
			return err
		}
	}
	if err := saveCfgFile(absPath, c, 0664); err != nil {
		return err
	}
	c.path = absPath
	return nil
}

// SaveGame makes d the new game defaults and saves the config. Invalid
// defaults are rejected and leave the config untouched.
func (c *Config) SaveGame(d GameDefaults) error {
	next := *c
	next.Game = d
	if err := next.Validate(); err != nil {
		return err
	}
	c.Game = d
	return c.Save()
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
