package e2e

import (
	"os"
	"path/filepath"
	"time"

	"scizor/internal/store"
)

// seedFixtureDB creates ~/.scizor/scizor.db under homeDir with a couple of
// clipboard entries and one note, so the dashboard has deterministic
// content to render.
func seedFixtureDB(homeDir string) error {
	dataDir := filepath.Join(homeDir, ".scizor")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	st, err := store.Open(filepath.Join(dataDir, "scizor.db"))
	if err != nil {
		return err
	}
	defer st.Close()

	now := time.Now()
	if err := st.UpsertClipboard("First fixture entry", now.Add(-10*time.Minute)); err != nil {
		return err
	}
	if err := st.UpsertClipboard("Second fixture entry", now.Add(-5*time.Minute)); err != nil {
		return err
	}

	_, err = st.InsertNote("Fixture note", "A deterministic note for UI tests.", 3, now)
	return err
}
