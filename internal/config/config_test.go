package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.json"))
	if err != nil {
		t.Fatalf("Load of missing file should succeed with defaults: %v", err)
	}
	if cfg.MaxHistoryItems != 100 || cfg.PollIntervalMs != 500 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Hotkeys.Enabled {
		t.Error("hotkeys should default to enabled")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scizor", "config.json")

	cfg := Default()
	cfg.BackendURL = "http://example.test:9000"
	cfg.MaxHistoryItems = 42
	cfg.Hotkeys.Enabled = false
	cfg.UI.NotesSort = "priority"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.BackendURL != "http://example.test:9000" {
		t.Errorf("backend URL: %q", loaded.BackendURL)
	}
	if loaded.MaxHistoryItems != 42 {
		t.Errorf("max history: %d", loaded.MaxHistoryItems)
	}
	if loaded.Hotkeys.Enabled {
		t.Error("hotkeys enabled flag lost")
	}
	if loaded.UI.NotesSort != "priority" {
		t.Errorf("notes sort: %q", loaded.UI.NotesSort)
	}
}

func TestLoadClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	bad := `{
		"backend_url": "",
		"max_history_items": -5,
		"poll_interval_ms": 0,
		"hotkeys": {"note_capture_delay_ms": -1},
		"ui": {"history_limit": 0, "notes_sort": "bogus"}
	}`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BackendURL != "http://localhost:5000" {
		t.Errorf("backend URL not defaulted: %q", cfg.BackendURL)
	}
	if cfg.MaxHistoryItems != 100 || cfg.PollIntervalMs != 500 {
		t.Errorf("limits not clamped: %+v", cfg)
	}
	if cfg.Hotkeys.NoteCaptureDelayMs != 100 {
		t.Errorf("note delay not clamped: %d", cfg.Hotkeys.NoteCaptureDelayMs)
	}
	if cfg.UI.NotesSort != "time_created" {
		t.Errorf("notes sort not defaulted: %q", cfg.UI.NotesSort)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}
