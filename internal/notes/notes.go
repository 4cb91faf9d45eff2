// Package notes implements quick-note operations over the store.
package notes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"scizor/internal/logging"
	"scizor/internal/store"
)

// ErrEmptyContent is returned when a note would have no content.
var ErrEmptyContent = errors.New("note content cannot be empty")

const (
	maxTitleLen = 50
	minTitleLen = 3
)

// Service owns note business logic. Construct one per process and pass it
// to consumers; it holds no global state.
type Service struct {
	store *store.Store
}

// NewService creates a note service over st.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Create adds a note and returns it.
func (s *Service) Create(title, content string, priority int) (store.Note, error) {
	if strings.TrimSpace(content) == "" {
		return store.Note{}, ErrEmptyContent
	}
	if priority < 1 || priority > 5 {
		priority = 1
	}

	now := time.Now()
	id, err := s.store.InsertNote(title, content, priority, now)
	if err != nil {
		return store.Note{}, fmt.Errorf("add note: %w", err)
	}

	logging.Info("note created", "id", id)
	return s.store.GetNote(id)
}

// CreateFromText creates a note from captured selected text, deriving the
// title from the first line: truncated with an ellipsis past 50 runes, or
// a timestamp fallback when the line is blank or shorter than 3 runes.
func (s *Service) CreateFromText(selected string, priority int) (store.Note, error) {
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return store.Note{}, ErrEmptyContent
	}

	return s.Create(DeriveTitle(selected, time.Now()), selected, priority)
}

// DeriveTitle computes the auto-title for captured text.
func DeriveTitle(text string, now time.Time) string {
	firstLine, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	firstLine = strings.TrimSpace(firstLine)

	runes := []rune(firstLine)
	if len(runes) > maxTitleLen {
		return string(runes[:maxTitleLen-3]) + "..."
	}
	if len(runes) < minTitleLen {
		return "Note from " + now.Format("15:04")
	}
	return firstLine
}

// Get retrieves one note.
func (s *Service) Get(id int64) (store.Note, error) {
	return s.store.GetNote(id)
}

// List retrieves all notes in the given order.
func (s *Service) List(sort store.NoteSort) []store.Note {
	notes, err := s.store.ListNotes(sort)
	if err != nil {
		logging.Error("failed to list notes", "err", err)
		return nil
	}
	return notes
}

// Search retrieves notes matching term in title or content.
func (s *Service) Search(term string) []store.Note {
	notes, err := s.store.SearchNotes(term)
	if err != nil {
		logging.Error("failed to search notes", "err", err)
		return nil
	}
	return notes
}

// Update applies a partial update. Returns false when the note does not
// exist or the update carries no fields.
func (s *Service) Update(id int64, upd store.NoteUpdate) bool {
	ok, err := s.store.UpdateNote(id, upd, time.Now())
	if err != nil {
		logging.Error("failed to update note", "id", id, "err", err)
		return false
	}
	return ok
}

// Delete removes a note. Returns false when no note had that id.
func (s *Service) Delete(id int64) bool {
	ok, err := s.store.DeleteNote(id)
	if err != nil {
		logging.Error("failed to delete note", "id", id, "err", err)
		return false
	}
	if ok {
		logging.Info("note deleted", "id", id)
	}
	return ok
}

// ExportText renders all notes as plain text.
func (s *Service) ExportText() string {
	all := s.List(store.SortByPriority)
	if len(all) == 0 {
		return "No notes to export."
	}

	var b strings.Builder
	b.WriteString("=== SCIZOR NOTES EXPORT ===\n\n")
	for _, n := range all {
		title := n.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&b, "Title: %s\n", title)
		fmt.Fprintf(&b, "Priority: %d\n", n.Priority)
		fmt.Fprintf(&b, "Created: %s\n", n.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "Content:\n%s\n", n.Content)
		b.WriteString(strings.Repeat("-", 50) + "\n\n")
	}
	return b.String()
}
