// Package clipboard implements the clipboard history engine: a background
// poller that detects clipboard changes, deduplicates them by content and
// persists a bounded history.
package clipboard

import (
	"context"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scizor/internal/clip"
	"scizor/internal/logging"
	"scizor/internal/store"
	"scizor/internal/ui"
)

// Notifier delivers messages to the UI loop. *tea.Program satisfies it;
// tests use a channel-backed fake. A nil Notifier is allowed for CLI use.
type Notifier interface {
	Send(msg tea.Msg)
}

// Options tune the engine. Zero values fall back to the defaults below.
type Options struct {
	MaxHistoryItems int           // retention limit, default 100
	PollInterval    time.Duration // default 500ms
	ErrorBackoff    time.Duration // sleep after a failed iteration, default 1s
	StopWait        time.Duration // bounded wait in StopMonitoring, default 1s
}

const (
	defaultMaxHistoryItems = 100
	defaultPollInterval    = 500 * time.Millisecond
	defaultErrorBackoff    = time.Second
	defaultStopWait        = time.Second
)

// Engine owns the "last observed content" value used for change detection
// and is the sole writer of clipboard history rows during automatic
// capture. Manual deletes and clears go through its public operations.
type Engine struct {
	store  *store.Store
	clip   clip.Backend
	notify Notifier

	maxHistoryItems int
	pollInterval    time.Duration
	errorBackoff    time.Duration
	stopWait        time.Duration

	mu          sync.Mutex
	monitoring  bool
	lastContent string
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewEngine creates an engine over the given store and clipboard backend.
// notify may be nil.
func NewEngine(st *store.Store, backend clip.Backend, notify Notifier, opts Options) *Engine {
	if opts.MaxHistoryItems <= 0 {
		opts.MaxHistoryItems = defaultMaxHistoryItems
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.ErrorBackoff <= 0 {
		opts.ErrorBackoff = defaultErrorBackoff
	}
	if opts.StopWait <= 0 {
		opts.StopWait = defaultStopWait
	}
	return &Engine{
		store:           st,
		clip:            backend,
		notify:          notify,
		maxHistoryItems: opts.MaxHistoryItems,
		pollInterval:    opts.PollInterval,
		errorBackoff:    opts.ErrorBackoff,
		stopWait:        opts.StopWait,
	}
}

// StartMonitoring begins background polling. Idempotent: calling it while
// already monitoring is a no-op. The current clipboard content becomes the
// change-detection baseline so pre-existing content is not re-ingested.
func (e *Engine) StartMonitoring() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.monitoring {
		return
	}

	e.lastContent = e.clip.ReadText()

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.monitoring = true

	go e.run(ctx, e.done)

	logging.Info("clipboard monitoring started", "interval", e.pollInterval)
}

// StopMonitoring signals the poll loop to exit and waits for it, bounded
// by StopWait. Idempotent. Returns regardless of whether the goroutine has
// actually unwound; it holds no resources beyond its next wakeup.
func (e *Engine) StopMonitoring() {
	e.mu.Lock()
	if !e.monitoring {
		e.mu.Unlock()
		return
	}
	e.monitoring = false
	cancel := e.cancel
	done := e.done
	e.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(e.stopWait):
		logging.Warn("clipboard poll loop did not stop in time")
	}

	logging.Info("clipboard monitoring stopped")
}

// IsMonitoring reports whether the poll loop is active.
func (e *Engine) IsMonitoring() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.monitoring
}

// run is the poll loop. It must never exit on a transient failure: errors
// are logged and the loop continues after the longer backoff sleep. Only
// context cancellation (StopMonitoring) ends it.
func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	delay := e.pollInterval
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		if e.checkOnce() {
			delay = e.pollInterval
		} else {
			delay = e.errorBackoff
		}
	}
}

// checkOnce performs one poll iteration. Reports false when the iteration
// failed and the loop should back off.
func (e *Engine) checkOnce() bool {
	content := e.clip.ReadText()
	trimmed := strings.TrimSpace(content)

	e.mu.Lock()
	changed := content != e.lastContent && trimmed != ""
	if changed {
		e.lastContent = content
	}
	e.mu.Unlock()

	if !changed {
		return true
	}

	if err := e.addToHistory(trimmed); err != nil {
		logging.Error("failed to save clipboard change", "err", err)
		return false
	}

	e.send(ui.ClipboardChanged{Content: trimmed})
	return true
}

// AddToHistory records content in the history, trimming it first. Blank
// content is rejected with no side effects. Returns false on rejection or
// on a persistence failure (logged, never raised to the caller).
func (e *Engine) AddToHistory(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return false
	}

	if err := e.addToHistory(trimmed); err != nil {
		logging.Error("failed to add to history", "err", err)
		return false
	}
	return true
}

// addToHistory enforces the retention limit, then upserts. The eviction
// and the insert are two separate statements, not one transaction: a crash
// between them can leave the store briefly over or under the limit. The
// store mutex keeps concurrent writers out of the window.
func (e *Engine) addToHistory(content string) error {
	count, err := e.store.CountClipboard()
	if err != nil {
		return err
	}

	if count >= e.maxHistoryItems {
		// Make exactly enough room for the row about to be inserted.
		evict := count - e.maxHistoryItems + 1
		if _, err := e.store.EvictOldestClipboard(evict); err != nil {
			return err
		}
		logging.Debug("evicted old clipboard entries", "count", evict)
	}

	if err := e.store.UpsertClipboard(content, time.Now()); err != nil {
		return err
	}

	e.emitHistory()
	return nil
}

// History returns entries newest-first, capped at limit. Never fails
// outward: an error is logged and an empty slice returned.
func (e *Engine) History(limit int) []store.ClipboardEntry {
	entries, err := e.store.GetClipboardHistory(limit)
	if err != nil {
		logging.Error("failed to get clipboard history", "err", err)
		return nil
	}
	return entries
}

// ClearHistory deletes all entries.
func (e *Engine) ClearHistory() bool {
	if err := e.store.ClearClipboard(); err != nil {
		logging.Error("failed to clear clipboard history", "err", err)
		return false
	}
	e.send(ui.HistoryUpdated{})
	return true
}

// DeleteItem deletes one entry by id. A missing id is a no-op returning
// false.
func (e *Engine) DeleteItem(id int64) bool {
	found, err := e.store.DeleteClipboardItem(id)
	if err != nil {
		logging.Error("failed to delete clipboard item", "id", id, "err", err)
		return false
	}
	if !found {
		return false
	}
	e.emitHistory()
	return true
}

// CurrentClipboard reads the OS clipboard, returning "" on any failure.
func (e *Engine) CurrentClipboard() string {
	return e.clip.ReadText()
}

// SetClipboard writes content to the OS clipboard.
func (e *Engine) SetClipboard(content string) bool {
	if err := e.clip.WriteText(content); err != nil {
		logging.Error("failed to set clipboard", "err", err)
		return false
	}
	// Adopt the written value as the baseline so the poller does not
	// re-capture our own write.
	e.mu.Lock()
	e.lastContent = content
	e.mu.Unlock()
	return true
}

// emitHistory sends the refreshed history to observers.
func (e *Engine) emitHistory() {
	if e.notify == nil {
		return
	}
	entries, err := e.store.GetClipboardHistory(e.maxHistoryItems)
	if err != nil {
		logging.Error("failed to reload history for notification", "err", err)
		return
	}
	e.send(ui.HistoryUpdated{Entries: entries})
}

func (e *Engine) send(msg tea.Msg) {
	if e.notify != nil {
		e.notify.Send(msg)
	}
}
