package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scizor/internal/config"
)

// bindViper wires a command's flags into a viper instance with the
// SCIZOR_* env var prefix.
//
// Precedence (lowest → highest): config file defaults → SCIZOR_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix("SCIZOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v.BindPFlags(cmd.Flags())
}

// addCommonFlags adds the flags shared by every sub-command that touches
// the database.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", "", "data directory (default ~/.scizor)")
	cmd.Flags().String("db", "", "database path (default <data-dir>/scizor.db)")
}

// resolveDataDir returns the data directory, creating it if needed.
func resolveDataDir(v *viper.Viper) (string, error) {
	dataDir := v.GetString("data-dir")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".scizor")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// resolveDBPath returns the database path under the data directory unless
// overridden.
func resolveDBPath(v *viper.Viper, dataDir string) string {
	if db := v.GetString("db"); db != "" {
		return db
	}
	return filepath.Join(dataDir, "scizor.db")
}

// loadConfig reads the JSON config file and applies flag/env overrides.
func loadConfig(v *viper.Viper, dataDir string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(dataDir, "config.json"))
	if err != nil {
		return nil, err
	}

	if url := v.GetString("backend-url"); url != "" {
		cfg.BackendURL = url
	}
	if n := v.GetInt("max-history"); n > 0 {
		cfg.MaxHistoryItems = n
	}
	if ms := v.GetInt("poll-interval"); ms > 0 {
		cfg.PollIntervalMs = ms
	}
	if v.GetBool("no-hotkeys") {
		cfg.Hotkeys.Enabled = false
	}

	return cfg, nil
}

// pollInterval converts the configured milliseconds to a duration.
func pollInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.PollIntervalMs) * time.Millisecond
}
