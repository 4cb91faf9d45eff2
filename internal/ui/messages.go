// Package ui provides the Bubble Tea terminal dashboard for Scizor.
package ui

import "scizor/internal/store"

// Background goroutines (the clipboard poller, the hotkey bridge, AI
// workers) never touch the model directly; they deliver these messages
// through tea.Program.Send and the update loop applies them on the UI
// goroutine.

// ClipboardChanged is sent when the poller observes new clipboard content.
type ClipboardChanged struct {
	Content string
}

// HistoryUpdated carries the refreshed clipboard history after any write.
type HistoryUpdated struct {
	Entries []store.ClipboardEntry
}

// HistoryLoaded is sent when history is fetched from the store.
type HistoryLoaded struct {
	Entries []store.ClipboardEntry
	Err     error
}

// NotesLoaded is sent when notes are fetched from the store.
type NotesLoaded struct {
	Notes []store.Note
	Err   error
}

// ToggleDashboard is sent by the toggle hotkey. No payload: the UI owns
// show/hide behavior.
type ToggleDashboard struct{}

// NoteCaptured is sent when the create-note hotkey captured a selection.
type NoteCaptured struct {
	Text string
}

// NoteCreated is sent after a captured selection has been persisted.
type NoteCreated struct {
	Note store.Note
	Err  error
}

// AIKind identifies which backend operation a message belongs to.
type AIKind string

const (
	AIEnhance  AIKind = "enhance"
	AIGenerate AIKind = "generate"
)

// AIStarted is sent when an enhance/generate request begins; the UI shows
// a spinner until the matching AIResult or AIError arrives.
type AIStarted struct {
	Kind AIKind
}

// AIResult is sent when an enhance/generate request completes.
type AIResult struct {
	Kind    AIKind
	Content string
}

// AIError is sent when an enhance/generate request fails. The UI shows it
// transiently and auto-dismisses.
type AIError struct {
	Kind AIKind
	Err  error
}

// StatusMsg updates the status line.
type StatusMsg struct {
	Text string
}

// dismissErrorMsg clears a displayed AI error after the auto-dismiss delay.
type dismissErrorMsg struct{}
