package store

import (
	"time"
)

// ClipboardEntry is one row of clipboard history. Content is the natural
// key: the UNIQUE constraint on it is what makes dedup work.
type ClipboardEntry struct {
	ID        int64
	Content   string
	CreatedAt time.Time
}

// CountClipboard returns the current number of clipboard history rows.
// Thread-safe: acquires read lock.
func (s *Store) CountClipboard() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM clipboard_history").Scan(&count)
	return count, err
}

// EvictOldestClipboard deletes the n oldest entries, ordered by creation
// time ascending with id as the tie-break (ids are monotonic, so ties
// resolve in insertion order). Returns the number of rows deleted.
// Thread-safe: acquires write lock.
func (s *Store) EvictOldestClipboard(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`
		DELETE FROM clipboard_history
		WHERE id IN (
			SELECT id FROM clipboard_history
			ORDER BY created_at ASC, id ASC
			LIMIT ?
		)
	`, n)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	return int(affected), err
}

// UpsertClipboard inserts content with the given timestamp, or refreshes
// the timestamp of the existing row when the content is already present.
// Thread-safe: acquires write lock.
func (s *Store) UpsertClipboard(content string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO clipboard_history (content, created_at)
		VALUES (?, ?)
		ON CONFLICT(content) DO UPDATE SET created_at = excluded.created_at
	`, content, at)
	return err
}

// GetClipboardHistory retrieves entries ordered most recent first, capped
// at limit.
// Thread-safe: acquires read lock.
func (s *Store) GetClipboardHistory(limit int) ([]ClipboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, content, created_at
		FROM clipboard_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ClipboardEntry
	for rows.Next() {
		var e ClipboardEntry
		if err := rows.Scan(&e.ID, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteClipboardItem deletes one entry by id. Returns false when no row
// had that id.
// Thread-safe: acquires write lock.
func (s *Store) DeleteClipboardItem(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM clipboard_history WHERE id = ?", id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ClearClipboard deletes all clipboard history rows.
// Thread-safe: acquires write lock.
func (s *Store) ClearClipboard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM clipboard_history")
	return err
}
