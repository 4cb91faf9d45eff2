package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"scizor/internal/store"
)

// errorDismissAfter is how long an AI error stays on screen.
const errorDismissAfter = 4 * time.Second

// pane identifies the focused dashboard panel.
type pane int

const (
	paneHistory pane = iota
	paneNotes
)

// AppConfig carries the command closures the dashboard runs against the
// rest of the app. The App itself holds no store or engine handles; it
// receives all data via messages.
type AppConfig struct {
	LoadHistory  func() tea.Cmd
	LoadNotes    func() tea.Cmd
	CopyEntry    func(id int64) tea.Cmd
	DeleteEntry  func(id int64) tea.Cmd
	ClearHistory func() tea.Cmd
	DeleteNote   func(id int64) tea.Cmd
}

// App is the root Bubble Tea model.
type App struct {
	cfg AppConfig

	entries []store.ClipboardEntry
	notes   []store.Note

	pane   pane
	cursor int

	spin   spinner.Model
	aiBusy bool
	aiKind AIKind

	popup      string
	popupTitle string

	errText string
	status  string
	hidden  bool

	width  int
	height int
	ready  bool
}

// NewApp creates the dashboard model.
func NewApp(cfg AppConfig) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return App{cfg: cfg, spin: sp, status: "ready"}
}

// Init loads history and notes.
func (a App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if a.cfg.LoadHistory != nil {
		cmds = append(cmds, a.cfg.LoadHistory())
	}
	if a.cfg.LoadNotes != nil {
		cmds = append(cmds, a.cfg.LoadNotes())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		if !a.aiBusy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case HistoryLoaded:
		if msg.Err != nil {
			a.errText = msg.Err.Error()
			return a, nil
		}
		a.entries = msg.Entries
		a.clampCursor()
		return a, nil

	case HistoryUpdated:
		a.entries = msg.Entries
		a.clampCursor()
		return a, nil

	case NotesLoaded:
		if msg.Err != nil {
			a.errText = msg.Err.Error()
			return a, nil
		}
		a.notes = msg.Notes
		a.clampCursor()
		return a, nil

	case ClipboardChanged:
		a.status = "captured: " + truncate(msg.Content, 40)
		return a, nil

	case ToggleDashboard:
		a.hidden = !a.hidden
		return a, nil

	case NoteCaptured:
		a.status = "note captured: " + truncate(msg.Text, 40)
		return a, nil

	case NoteCreated:
		if msg.Err != nil {
			a.errText = msg.Err.Error()
			return a, dismissErrorLater()
		}
		if a.cfg.LoadNotes != nil {
			return a, a.cfg.LoadNotes()
		}
		return a, nil

	case AIStarted:
		a.aiBusy = true
		a.aiKind = msg.Kind
		a.status = string(msg.Kind) + " in progress..."
		return a, a.spin.Tick

	case AIResult:
		a.aiBusy = false
		switch msg.Kind {
		case AIGenerate:
			a.popupTitle = "Generated response"
			a.popup = msg.Content
		case AIEnhance:
			a.status = "prompt enhanced and pasted"
		}
		return a, nil

	case AIError:
		a.aiBusy = false
		a.errText = msg.Err.Error()
		return a, dismissErrorLater()

	case StatusMsg:
		a.status = msg.Text
		return a, nil

	case dismissErrorMsg:
		a.errText = ""
		return a, nil
	}

	return a, nil
}

// dismissErrorLater schedules the auto-dismiss of the error bar.
func dismissErrorLater() tea.Cmd {
	return tea.Tick(errorDismissAfter, func(time.Time) tea.Msg {
		return dismissErrorMsg{}
	})
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A visible popup swallows keys until closed.
	if a.popup != "" {
		switch msg.String() {
		case "esc", "enter", "q":
			a.popup = ""
			a.popupTitle = ""
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "tab":
		if a.pane == paneHistory {
			a.pane = paneNotes
		} else {
			a.pane = paneHistory
		}
		a.cursor = 0
		return a, nil

	case "j", "down":
		if a.cursor < a.paneLen()-1 {
			a.cursor++
		}
		return a, nil

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "g", "home":
		a.cursor = 0
		return a, nil

	case "G", "end":
		if a.paneLen() > 0 {
			a.cursor = a.paneLen() - 1
		}
		return a, nil

	case "enter":
		if a.pane == paneHistory && a.cursor < len(a.entries) && a.cfg.CopyEntry != nil {
			return a, a.cfg.CopyEntry(a.entries[a.cursor].ID)
		}
		return a, nil

	case "d", "delete":
		if a.pane == paneHistory && a.cursor < len(a.entries) && a.cfg.DeleteEntry != nil {
			return a, a.cfg.DeleteEntry(a.entries[a.cursor].ID)
		}
		if a.pane == paneNotes && a.cursor < len(a.notes) && a.cfg.DeleteNote != nil {
			return a, a.cfg.DeleteNote(a.notes[a.cursor].ID)
		}
		return a, nil

	case "C":
		if a.pane == paneHistory && a.cfg.ClearHistory != nil {
			return a, a.cfg.ClearHistory()
		}
		return a, nil

	case "r":
		return a, a.Init()
	}

	return a, nil
}

// paneLen is the row count of the focused pane.
func (a App) paneLen() int {
	if a.pane == paneHistory {
		return len(a.entries)
	}
	return len(a.notes)
}

func (a *App) clampCursor() {
	if n := a.paneLen(); a.cursor >= n && n > 0 {
		a.cursor = n - 1
	} else if n == 0 {
		a.cursor = 0
	}
}

// Entries returns the current history entries (for testing).
func (a App) Entries() []store.ClipboardEntry {
	return a.entries
}

// Notes returns the current notes (for testing).
func (a App) Notes() []store.Note {
	return a.notes
}

// Hidden reports whether the dashboard is toggled away (for testing).
func (a App) Hidden() bool {
	return a.hidden
}

// Popup returns the current popup content (for testing).
func (a App) Popup() string {
	return a.popup
}
