// Package config holds the persistent application configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// BackendURL is the base URL of the AI backend API
	BackendURL string `json:"backend_url"`

	// Clipboard history settings
	MaxHistoryItems int `json:"max_history_items"`
	PollIntervalMs  int `json:"poll_interval_ms"`

	// Hotkey capture settings
	Hotkeys HotkeyConfig `json:"hotkeys"`

	// UI preferences
	UI UIConfig `json:"ui"`
}

// HotkeyConfig holds global hotkey preferences
type HotkeyConfig struct {
	Enabled bool `json:"enabled"`

	// Settle delays for the clipboard capture sequence. There is no OS
	// signal for "copy completed", so these are best-effort waits.
	NoteCaptureDelayMs int `json:"note_capture_delay_ms"`
	AICaptureDelayMs   int `json:"ai_capture_delay_ms"`
}

// UIConfig holds dashboard preferences
type UIConfig struct {
	HistoryLimit int    `json:"history_limit"`
	NotesSort    string `json:"notes_sort"` // "priority", "name" or "time_created"
}

// Default returns sensible defaults
func Default() *Config {
	return &Config{
		BackendURL:      "http://localhost:5000",
		MaxHistoryItems: 100,
		PollIntervalMs:  500,
		Hotkeys: HotkeyConfig{
			Enabled:            true,
			NoteCaptureDelayMs: 100,
			AICaptureDelayMs:   150,
		},
		UI: UIConfig{
			HistoryLimit: 100,
			NotesSort:    "time_created",
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Unknown fields are ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.validate()
	return cfg, nil
}

// Save writes the config as indented JSON, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// validate clamps out-of-range values back to defaults.
func (c *Config) validate() {
	if c.BackendURL == "" {
		c.BackendURL = "http://localhost:5000"
	}
	if c.MaxHistoryItems <= 0 {
		c.MaxHistoryItems = 100
	}
	if c.PollIntervalMs <= 0 {
		c.PollIntervalMs = 500
	}
	if c.Hotkeys.NoteCaptureDelayMs <= 0 {
		c.Hotkeys.NoteCaptureDelayMs = 100
	}
	if c.Hotkeys.AICaptureDelayMs <= 0 {
		c.Hotkeys.AICaptureDelayMs = 150
	}
	if c.UI.HistoryLimit <= 0 {
		c.UI.HistoryLimit = 100
	}
	switch c.UI.NotesSort {
	case "priority", "name", "time_created":
	default:
		c.UI.NotesSort = "time_created"
	}
}
