package store

import (
	"fmt"
	"strings"
	"time"
)

// Note is a quick note. Priority is a 1-5 ordinal, 5 highest.
type Note struct {
	ID        int64
	Title     string
	Content   string
	Priority  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteUpdate describes a partial update; nil fields are left untouched.
type NoteUpdate struct {
	Title    *string
	Content  *string
	Priority *int
}

// NoteSort selects the ordering for ListNotes.
type NoteSort string

const (
	SortByPriority NoteSort = "priority"
	SortByName     NoteSort = "name"
	SortByCreated  NoteSort = "time_created"
)

// InsertNote creates a note and returns its id.
// Thread-safe: acquires write lock.
func (s *Store) InsertNote(title, content string, priority int, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`
		INSERT INTO notes (title, content, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, nullIfEmpty(title), content, priority, at, at)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetNote retrieves a note by id. Returns sql.ErrNoRows when absent.
// Thread-safe: acquires read lock.
func (s *Store) GetNote(id int64) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, COALESCE(title, ''), content, priority, created_at, updated_at
		FROM notes WHERE id = ?
	`, id)

	var n Note
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Priority, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// ListNotes retrieves all notes in the requested order.
// Thread-safe: acquires read lock.
func (s *Store) ListNotes(sort NoteSort) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var order string
	switch sort {
	case SortByPriority:
		order = "priority DESC, created_at DESC"
	case SortByName:
		order = "COALESCE(title, '') ASC, created_at DESC"
	default:
		order = "created_at DESC"
	}

	return s.queryNotes(fmt.Sprintf(`
		SELECT id, COALESCE(title, ''), content, priority, created_at, updated_at
		FROM notes ORDER BY %s
	`, order))
}

// SearchNotes retrieves notes whose title or content contains term,
// priority-first like the default list.
// Thread-safe: acquires read lock.
func (s *Store) SearchNotes(term string) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + term + "%"
	return s.queryNotes(`
		SELECT id, COALESCE(title, ''), content, priority, created_at, updated_at
		FROM notes
		WHERE COALESCE(title, '') LIKE ? OR content LIKE ?
		ORDER BY priority DESC, created_at DESC
	`, pattern, pattern)
}

// UpdateNote applies a partial update and bumps updated_at. Returns false
// when the note does not exist or the update is empty.
// Thread-safe: acquires write lock.
func (s *Store) UpdateNote(id int64, upd NoteUpdate, at time.Time) (bool, error) {
	var sets []string
	var args []any

	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, nullIfEmpty(*upd.Title))
	}
	if upd.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *upd.Content)
	}
	if upd.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *upd.Priority)
	}
	if len(sets) == 0 {
		return false, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, at, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(
		fmt.Sprintf("UPDATE notes SET %s WHERE id = ?", strings.Join(sets, ", ")),
		args...,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteNote deletes a note by id. Returns false when no row had that id.
// Thread-safe: acquires write lock.
func (s *Store) DeleteNote(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// queryNotes is a helper that executes a query and scans results into Notes.
// Caller must hold s.mu (read lock is sufficient).
func (s *Store) queryNotes(query string, args ...any) ([]Note, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Priority, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// nullIfEmpty maps "" to NULL so untitled notes stay NULL in the schema.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
