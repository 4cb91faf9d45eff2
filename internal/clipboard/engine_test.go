package clipboard

import (
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"scizor/internal/clip"
	"scizor/internal/store"
	"scizor/internal/ui"
)

// TestMain ensures the poll loop goroutine never outlives StopMonitoring.
// The database/sql pool goroutine lives until the store is closed in
// cleanup, so it is excluded.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

// recorder captures messages the engine would send to the UI loop.
type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) messages() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]tea.Msg, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func newTestEngine(t *testing.T, backend clip.Backend, opts Options) (*Engine, *recorder) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	rec := &recorder{}
	return NewEngine(st, backend, rec, opts), rec
}

func TestAddToHistoryRejectsBlank(t *testing.T) {
	eng, _ := newTestEngine(t, clip.NewMemory(""), Options{})

	for _, blank := range []string{"", "   ", "\t\n  "} {
		if eng.AddToHistory(blank) {
			t.Errorf("AddToHistory(%q) should return false", blank)
		}
	}
	if got := eng.History(10); len(got) != 0 {
		t.Errorf("blank input must leave history empty, got %d entries", len(got))
	}
}

func TestAddToHistoryTrims(t *testing.T) {
	eng, _ := newTestEngine(t, clip.NewMemory(""), Options{})

	if !eng.AddToHistory("  padded  ") {
		t.Fatal("AddToHistory failed")
	}
	entries := eng.History(10)
	if len(entries) != 1 || entries[0].Content != "padded" {
		t.Errorf("expected single trimmed entry, got %+v", entries)
	}
}

func TestAddToHistoryDedup(t *testing.T) {
	eng, _ := newTestEngine(t, clip.NewMemory(""), Options{MaxHistoryItems: 10})

	eng.AddToHistory("a")
	eng.AddToHistory("b")
	eng.AddToHistory("a")

	entries := eng.History(10)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after re-adding a, got %d", len(entries))
	}
	// The repeated content moves back to the front.
	if entries[0].Content != "a" || entries[1].Content != "b" {
		t.Errorf("expected [a b], got [%s %s]", entries[0].Content, entries[1].Content)
	}
}

func TestRetentionLimit(t *testing.T) {
	eng, _ := newTestEngine(t, clip.NewMemory(""), Options{MaxHistoryItems: 3})

	for i := 1; i <= 5; i++ {
		if !eng.AddToHistory(fmt.Sprintf("x%d", i)) {
			t.Fatalf("AddToHistory(x%d) failed", i)
		}
		// Distinct timestamps keep the eviction order deterministic.
		time.Sleep(2 * time.Millisecond)
	}

	entries := eng.History(10)
	if len(entries) != 3 {
		t.Fatalf("expected exactly 3 entries, got %d", len(entries))
	}
	want := []string{"x5", "x4", "x3"}
	for i, w := range want {
		if entries[i].Content != w {
			t.Errorf("entry %d: expected %q, got %q", i, w, entries[i].Content)
		}
	}
}

func TestRetentionRecoversFromOverfull(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	// Seed more rows than the limit, as if the limit had been lowered.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 6; i++ {
		if err := st.UpsertClipboard(fmt.Sprintf("old-%d", i), base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	eng := NewEngine(st, clip.NewMemory(""), nil, Options{MaxHistoryItems: 3})
	if !eng.AddToHistory("new") {
		t.Fatal("AddToHistory failed")
	}

	entries := eng.History(10)
	if len(entries) != 3 {
		t.Fatalf("expected count back at the limit, got %d", len(entries))
	}
	if entries[0].Content != "new" {
		t.Errorf("expected new entry first, got %q", entries[0].Content)
	}
}

func TestHistoryNotifications(t *testing.T) {
	eng, rec := newTestEngine(t, clip.NewMemory(""), Options{})

	eng.AddToHistory("hello")

	var sawUpdate bool
	for _, msg := range rec.messages() {
		if upd, ok := msg.(ui.HistoryUpdated); ok {
			sawUpdate = true
			if len(upd.Entries) != 1 || upd.Entries[0].Content != "hello" {
				t.Errorf("unexpected HistoryUpdated payload: %+v", upd.Entries)
			}
		}
	}
	if !sawUpdate {
		t.Error("expected a HistoryUpdated message after AddToHistory")
	}
}

func TestDeleteItem(t *testing.T) {
	eng, _ := newTestEngine(t, clip.NewMemory(""), Options{})

	eng.AddToHistory("keep")
	eng.AddToHistory("drop")
	entries := eng.History(10)

	var dropID int64
	for _, e := range entries {
		if e.Content == "drop" {
			dropID = e.ID
		}
	}
	if !eng.DeleteItem(dropID) {
		t.Error("DeleteItem on existing id should return true")
	}
	if eng.DeleteItem(99999) {
		t.Error("DeleteItem on missing id should return false")
	}

	entries = eng.History(10)
	if len(entries) != 1 || entries[0].Content != "keep" {
		t.Errorf("expected only keep remaining, got %+v", entries)
	}
}

func TestClearHistory(t *testing.T) {
	eng, _ := newTestEngine(t, clip.NewMemory(""), Options{})

	// Clearing an empty history succeeds.
	if !eng.ClearHistory() {
		t.Error("ClearHistory on empty store should return true")
	}

	eng.AddToHistory("one")
	eng.AddToHistory("two")
	if !eng.ClearHistory() {
		t.Error("ClearHistory failed")
	}
	if got := eng.History(10); len(got) != 0 {
		t.Errorf("expected empty history after clear, got %d entries", len(got))
	}
}

func TestStartStopIdempotent(t *testing.T) {
	mem := clip.NewMemory("")
	eng, _ := newTestEngine(t, mem, Options{PollInterval: 10 * time.Millisecond})

	eng.StartMonitoring()
	eng.StartMonitoring()
	if !eng.IsMonitoring() {
		t.Fatal("expected monitoring after start")
	}

	eng.StopMonitoring()
	eng.StopMonitoring()
	if eng.IsMonitoring() {
		t.Fatal("expected not monitoring after stop")
	}
}

func TestPollLoopCapturesChange(t *testing.T) {
	mem := clip.NewMemory("preexisting")
	eng, rec := newTestEngine(t, mem, Options{PollInterval: 5 * time.Millisecond})

	eng.StartMonitoring()
	defer eng.StopMonitoring()

	mem.WriteText("fresh content")

	deadline := time.After(2 * time.Second)
	for {
		entries := eng.History(10)
		if len(entries) == 1 && entries[0].Content == "fresh content" {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("poll loop never captured the change, history: %+v", entries)
		case <-time.After(5 * time.Millisecond):
		}
	}

	// The baseline content present at startup must not be ingested.
	for _, e := range eng.History(10) {
		if e.Content == "preexisting" {
			t.Error("startup clipboard content was re-ingested")
		}
	}

	var sawChange bool
	for _, msg := range rec.messages() {
		if ch, ok := msg.(ui.ClipboardChanged); ok {
			sawChange = true
			if ch.Content != "fresh content" {
				t.Errorf("unexpected ClipboardChanged content: %q", ch.Content)
			}
		}
	}
	if !sawChange {
		t.Error("expected a ClipboardChanged message")
	}
}

func TestSetClipboardNotRecaptured(t *testing.T) {
	mem := clip.NewMemory("")
	eng, _ := newTestEngine(t, mem, Options{PollInterval: 5 * time.Millisecond})

	eng.StartMonitoring()
	defer eng.StopMonitoring()

	if !eng.SetClipboard("written by us") {
		t.Fatal("SetClipboard failed")
	}
	if mem.ReadText() != "written by us" {
		t.Fatalf("backend not written: %q", mem.ReadText())
	}

	// Give the poller several cycles to (wrongly) pick up our own write.
	time.Sleep(50 * time.Millisecond)

	if got := eng.History(10); len(got) != 0 {
		t.Errorf("engine re-captured its own write: %+v", got)
	}
}

func TestCurrentClipboard(t *testing.T) {
	mem := clip.NewMemory("current")
	eng, _ := newTestEngine(t, mem, Options{})

	if got := eng.CurrentClipboard(); got != "current" {
		t.Errorf("expected %q, got %q", "current", got)
	}

	mem.ReadErr = true
	if got := eng.CurrentClipboard(); got != "" {
		t.Errorf("expected empty string on read failure, got %q", got)
	}
}
