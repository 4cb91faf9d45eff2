// Package clip provides a text-only interface to the system clipboard.
// The real backend wraps golang.design/x/clipboard; a headless no-op
// backend is substituted when no display environment is available, and a
// Memory backend exists for tests.
package clip

// Backend is the OS clipboard as the rest of Scizor sees it. Read errors
// are swallowed at this layer: an unreadable clipboard reads as "".
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ReadText returns the current clipboard text, or "" when the
	// clipboard is empty, unreadable or holds non-text content.
	ReadText() string

	// WriteText replaces the clipboard contents with text.
	WriteText(text string) error

	// Close releases any resources held by the backend.
	Close()
}
