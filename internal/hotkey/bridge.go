// Package hotkey implements the global hotkey bridge: OS-wide key
// combinations that toggle the dashboard, capture the current selection
// into a note, or send it to the AI backend.
package hotkey

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"golang.design/x/hotkey"

	"scizor/internal/backend"
	"scizor/internal/clipboard"
	"scizor/internal/logging"
	"scizor/internal/notes"
	"scizor/internal/ui"
)

// Selection length bounds for the AI hotkeys.
const (
	minSelectionLen = 3
	maxSelectionLen = 2000
)

// Options tune the bridge. Zero values fall back to the defaults below.
type Options struct {
	// NoteCaptureDelay and AICaptureDelay bound the wait for the OS to
	// finish the synthetic copy. There is no completion signal to observe,
	// so this is a best-effort heuristic, not a guarantee.
	NoteCaptureDelay time.Duration // default 100ms
	AICaptureDelay   time.Duration // default 150ms
	StopWait         time.Duration // bounded wait in Stop, default 1s
}

const (
	defaultNoteCaptureDelay = 100 * time.Millisecond
	defaultAICaptureDelay   = 150 * time.Millisecond
	defaultBridgeStopWait   = time.Second
)

// Bridge listens for the four global hotkeys on background goroutines and
// forwards intents to the UI loop via messages. It never touches UI state
// directly.
type Bridge struct {
	engine  *clipboard.Engine
	notes   *notes.Service
	backend *backend.Client
	keys    KeySender
	notify  clipboard.Notifier

	noteDelay time.Duration
	aiDelay   time.Duration
	stopWait  time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewBridge wires the bridge to its collaborators. notify may be nil.
func NewBridge(engine *clipboard.Engine, noteSvc *notes.Service, client *backend.Client, keys KeySender, notify clipboard.Notifier, opts Options) *Bridge {
	if opts.NoteCaptureDelay <= 0 {
		opts.NoteCaptureDelay = defaultNoteCaptureDelay
	}
	if opts.AICaptureDelay <= 0 {
		opts.AICaptureDelay = defaultAICaptureDelay
	}
	if opts.StopWait <= 0 {
		opts.StopWait = defaultBridgeStopWait
	}
	return &Bridge{
		engine:    engine,
		notes:     noteSvc,
		backend:   client,
		keys:      keys,
		notify:    notify,
		noteDelay: opts.NoteCaptureDelay,
		aiDelay:   opts.AICaptureDelay,
		stopWait:  opts.StopWait,
	}
}

// Start registers the global hotkeys and begins listening. Idempotent.
// Registration failures are logged per combination; the bridge keeps
// whatever combinations did register.
func (b *Bridge) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.done = make(chan struct{})
	b.running = true

	go b.listen(ctx, b.done)

	logging.Info("hotkey bridge started")
}

// Stop unregisters the hotkeys and waits for the listeners, bounded by
// StopWait. Idempotent; unregistration failures are swallowed.
func (b *Bridge) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	cancel := b.cancel
	done := b.done
	b.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(b.stopWait):
		logging.Warn("hotkey listeners did not stop in time")
	}

	logging.Info("hotkey bridge stopped")
}

// IsRunning reports whether the listeners are active.
func (b *Bridge) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

// binding ties a key combination to its handler.
type binding struct {
	name    string
	key     hotkey.Key
	handler func()
}

// listen registers each combination and fans events into handlers until
// the context is cancelled.
func (b *Bridge) listen(ctx context.Context, done chan struct{}) {
	defer close(done)

	bindings := []binding{
		{"toggle-dashboard", hotkey.KeyS, b.onToggle},
		{"create-note", hotkey.KeyN, b.onCreateNote},
		{"enhance-prompt", hotkey.KeyH, b.onEnhance},
		{"generate-response", hotkey.KeyG, b.onGenerate},
	}

	var wg sync.WaitGroup
	for _, bd := range bindings {
		hk := hotkey.New(ctrlAlt, bd.key)
		if err := hk.Register(); err != nil {
			logging.Error("failed to register hotkey", "name", bd.name, "err", err)
			continue
		}
		logging.Debug("hotkey registered", "name", bd.name)

		wg.Add(1)
		go func(bd binding, hk *hotkey.Hotkey) {
			defer wg.Done()
			defer func() {
				// De-registration failure must not take anything down.
				defer func() { recover() }()
				hk.Unregister()
			}()

			for {
				select {
				case <-ctx.Done():
					return
				case <-hk.Keydown():
					b.safely(bd.name, bd.handler)
				}
			}
		}(bd, hk)
	}

	wg.Wait()
}

// safely runs a hotkey handler, containing panics: an escaped panic inside
// an OS hotkey callback would kill hotkey delivery for good.
func (b *Bridge) safely(name string, handler func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("hotkey handler panicked", "name", name, "panic", r)
		}
	}()
	handler()
}

func (b *Bridge) onToggle() {
	b.send(ui.ToggleDashboard{})
}

// captureSelection runs the snapshot/copy/read/restore protocol and
// returns the captured selection, or "" when nothing was selected.
func (b *Bridge) captureSelection(settle time.Duration) string {
	original := b.engine.CurrentClipboard()

	if err := b.keys.SendCopy(); err != nil {
		logging.Error("failed to send copy chord", "err", err)
		return ""
	}
	time.Sleep(settle)

	selected := b.engine.CurrentClipboard()

	// Put the user's prior clipboard back so the synthetic copy does not
	// clobber it.
	if original != selected {
		b.engine.SetClipboard(original)
	}

	selected = strings.TrimSpace(selected)
	if selected == "" || selected == strings.TrimSpace(original) {
		return ""
	}
	return selected
}

func (b *Bridge) onCreateNote() {
	selected := b.captureSelection(b.noteDelay)
	if selected == "" {
		logging.Info("create-note hotkey: no text selected")
		return
	}

	b.engine.AddToHistory(selected)

	note, err := b.notes.CreateFromText(selected, 1)
	b.send(ui.NoteCaptured{Text: selected})
	b.send(ui.NoteCreated{Note: note, Err: err})
}

func (b *Bridge) onEnhance() {
	b.dispatchAI(ui.AIEnhance, b.enhance)
}

func (b *Bridge) onGenerate() {
	b.dispatchAI(ui.AIGenerate, b.generate)
}

// dispatchAI runs the capture sequence, validates the selection and hands
// it to the given backend call on a worker goroutine.
func (b *Bridge) dispatchAI(kind ui.AIKind, call func(ctx context.Context, text string)) {
	selected := b.captureSelection(b.aiDelay)
	if selected == "" {
		logging.Info("AI hotkey: no text selected", "kind", kind)
		return
	}

	if n := utf8.RuneCountInString(selected); n < minSelectionLen || n > maxSelectionLen {
		logging.Info("AI hotkey: selection length out of bounds", "kind", kind, "len", n)
		return
	}

	b.engine.AddToHistory(selected)
	b.send(ui.AIStarted{Kind: kind})

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("AI worker panicked", "kind", kind, "panic", r)
			}
		}()
		call(context.Background(), selected)
	}()
}

func (b *Bridge) enhance(ctx context.Context, text string) {
	result, err := b.backend.EnhancePrompt(ctx, text)
	if err != nil {
		logging.Error("enhance prompt failed", "err", err)
		b.send(ui.AIError{Kind: ui.AIEnhance, Err: err})
		return
	}

	// The enhanced prompt replaces the clipboard and is pasted in place.
	b.engine.SetClipboard(result.EnhancedPrompt)
	if err := b.keys.SendPaste(); err != nil {
		logging.Error("failed to send paste chord", "err", err)
	}
	b.send(ui.AIResult{Kind: ui.AIEnhance, Content: result.EnhancedPrompt})
}

func (b *Bridge) generate(ctx context.Context, text string) {
	result, err := b.backend.GenerateResponse(ctx, text)
	if err != nil {
		logging.Error("generate response failed", "err", err)
		b.send(ui.AIError{Kind: ui.AIGenerate, Err: err})
		return
	}

	b.send(ui.AIResult{Kind: ui.AIGenerate, Content: result.Response})
}

func (b *Bridge) send(msg tea.Msg) {
	if b.notify != nil {
		b.notify.Send(msg)
	}
}
