package notes

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"scizor/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(st)
}

func TestDeriveTitle(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain line", "Buy groceries", "Buy groceries"},
		{"first line only", "Buy groceries\nmilk\neggs", "Buy groceries"},
		{"surrounding whitespace", "  Buy groceries  \nmore", "Buy groceries"},
		{"too short", "ab", "Note from 14:30"},
		{"blank first line", "\n\nreal content", "real content"},
		{"exactly three runes", "abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.text, now); got != tt.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDeriveTitleTruncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	got := DeriveTitle(long, time.Now())

	if utf8.RuneCountInString(got) != 50 {
		t.Errorf("expected 50 runes, got %d (%q)", utf8.RuneCountInString(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if !strings.HasPrefix(got, strings.Repeat("x", 47)) {
		t.Errorf("expected first 47 runes preserved, got %q", got)
	}
}

func TestDeriveTitleMultibyte(t *testing.T) {
	// Truncation counts runes, not bytes.
	long := strings.Repeat("日", 60)
	got := DeriveTitle(long, time.Now())
	if utf8.RuneCountInString(got) != 50 {
		t.Errorf("expected 50 runes for multibyte input, got %d", utf8.RuneCountInString(got))
	}
}

func TestCreate(t *testing.T) {
	svc := newTestService(t)

	note, err := svc.Create("Title", "body", 3)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if note.Title != "Title" || note.Content != "body" || note.Priority != 3 {
		t.Errorf("unexpected note: %+v", note)
	}
}

func TestCreateRejectsEmpty(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create("Title", "   ", 1); err != ErrEmptyContent {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestCreateClampsPriority(t *testing.T) {
	svc := newTestService(t)

	for _, p := range []int{0, -2, 6, 100} {
		note, err := svc.Create("Title", "body", p)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if note.Priority != 1 {
			t.Errorf("priority %d should clamp to 1, got %d", p, note.Priority)
		}
	}
}

func TestCreateFromText(t *testing.T) {
	svc := newTestService(t)

	note, err := svc.CreateFromText("  Shopping list\nmilk\neggs  ", 2)
	if err != nil {
		t.Fatalf("CreateFromText failed: %v", err)
	}
	if note.Title != "Shopping list" {
		t.Errorf("unexpected derived title: %q", note.Title)
	}
	if note.Content != "Shopping list\nmilk\neggs" {
		t.Errorf("content not trimmed as expected: %q", note.Content)
	}

	if _, err := svc.CreateFromText("   \n  ", 1); err != ErrEmptyContent {
		t.Errorf("expected ErrEmptyContent for blank capture, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newTestService(t)

	note, err := svc.Create("Before", "body", 1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "After"
	if !svc.Update(note.ID, store.NoteUpdate{Title: &title}) {
		t.Error("Update on existing note should return true")
	}
	got, _ := svc.Get(note.ID)
	if got.Title != "After" {
		t.Errorf("title not updated: %q", got.Title)
	}
	if got.Content != "body" {
		t.Errorf("content should survive a title-only update: %q", got.Content)
	}

	if svc.Update(99999, store.NoteUpdate{Title: &title}) {
		t.Error("Update on missing note should return false")
	}

	if !svc.Delete(note.ID) {
		t.Error("Delete on existing note should return true")
	}
	if svc.Delete(note.ID) {
		t.Error("Delete should return false the second time")
	}
}

func TestExportText(t *testing.T) {
	svc := newTestService(t)

	if got := svc.ExportText(); got != "No notes to export." {
		t.Errorf("unexpected empty export: %q", got)
	}

	svc.Create("First", "alpha", 5)
	svc.Create("", "untitled body", 1)

	out := svc.ExportText()
	if !strings.HasPrefix(out, "=== SCIZOR NOTES EXPORT ===") {
		t.Errorf("missing export header: %q", out[:40])
	}
	for _, want := range []string{"Title: First", "Title: Untitled", "alpha", "untitled body", "Priority: 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q", want)
		}
	}
}
