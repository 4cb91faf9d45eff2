package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scizor/internal/backend"
	"scizor/internal/clip"
	"scizor/internal/clipboard"
	"scizor/internal/config"
	"scizor/internal/hotkey"
	"scizor/internal/logging"
	"scizor/internal/notes"
	"scizor/internal/store"
	"scizor/internal/ui"
)

// programNotifier forwards messages to the Bubble Tea program once it
// exists. The engine and bridge are constructed before the program, so
// the target is attached late.
type programNotifier struct {
	program *tea.Program
}

func (n *programNotifier) Send(msg tea.Msg) {
	if n.program != nil {
		n.program.Send(msg)
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the dashboard with clipboard monitoring and hotkeys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := bindViper(cmd, v); err != nil {
				return err
			}
			return runDashboard(v)
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().String("backend-url", "", "AI backend base URL (default http://localhost:5000)")
	cmd.Flags().Int("max-history", 0, "maximum clipboard history entries (default 100)")
	cmd.Flags().Int("poll-interval", 0, "clipboard poll interval in milliseconds (default 500)")
	cmd.Flags().Bool("no-hotkeys", false, "disable global hotkey registration")

	return cmd
}

func runDashboard(v *viper.Viper) error {
	dataDir, err := resolveDataDir(v)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	if err := logging.Init(dataDir); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()

	cfg, err := loadConfig(v, dataDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(resolveDBPath(v, dataDir))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	clipBackend := clip.New()
	defer clipBackend.Close()
	logging.Info("clipboard backend ready", "backend", clipBackend.Name())

	notify := &programNotifier{}

	engine := clipboard.NewEngine(st, clipBackend, notify, clipboard.Options{
		MaxHistoryItems: cfg.MaxHistoryItems,
		PollInterval:    pollInterval(cfg),
	})
	noteSvc := notes.NewService(st)
	client := backend.NewClient(cfg.BackendURL)

	// Off the startup path: the dashboard is useful without the backend.
	go func() {
		if !client.Healthy(context.Background()) {
			logging.Warn("AI backend not reachable", "url", cfg.BackendURL)
		}
	}()

	app := ui.NewApp(dashboardConfig(cfg, engine, noteSvc))
	program := tea.NewProgram(app, tea.WithAltScreen())
	notify.program = program

	engine.StartMonitoring()
	defer engine.StopMonitoring()

	if cfg.Hotkeys.Enabled {
		sender, err := hotkey.NewSystemSender()
		if err != nil {
			logging.Error("hotkeys disabled: key sender unavailable", "err", err)
		} else {
			bridge := hotkey.NewBridge(engine, noteSvc, client, sender, notify, hotkey.Options{
				NoteCaptureDelay: time.Duration(cfg.Hotkeys.NoteCaptureDelayMs) * time.Millisecond,
				AICaptureDelay:   time.Duration(cfg.Hotkeys.AICaptureDelayMs) * time.Millisecond,
			})
			bridge.Start()
			defer bridge.Stop()
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// dashboardConfig builds the command closures the UI runs. The UI never
// holds the engine or the note service directly.
func dashboardConfig(cfg *config.Config, engine *clipboard.Engine, noteSvc *notes.Service) ui.AppConfig {
	historyLimit := cfg.UI.HistoryLimit
	notesSort := store.NoteSort(cfg.UI.NotesSort)

	return ui.AppConfig{
		LoadHistory: func() tea.Cmd {
			return func() tea.Msg {
				return ui.HistoryLoaded{Entries: engine.History(historyLimit)}
			}
		},
		LoadNotes: func() tea.Cmd {
			return func() tea.Msg {
				return ui.NotesLoaded{Notes: noteSvc.List(notesSort)}
			}
		},
		CopyEntry: func(id int64) tea.Cmd {
			return func() tea.Msg {
				for _, e := range engine.History(historyLimit) {
					if e.ID == id {
						if engine.SetClipboard(e.Content) {
							return ui.StatusMsg{Text: "copied to clipboard"}
						}
						return ui.StatusMsg{Text: "copy failed"}
					}
				}
				return ui.StatusMsg{Text: "entry not found"}
			}
		},
		DeleteEntry: func(id int64) tea.Cmd {
			return func() tea.Msg {
				engine.DeleteItem(id)
				return ui.HistoryUpdated{Entries: engine.History(historyLimit)}
			}
		},
		ClearHistory: func() tea.Cmd {
			return func() tea.Msg {
				engine.ClearHistory()
				return ui.HistoryUpdated{}
			}
		},
		DeleteNote: func(id int64) tea.Cmd {
			return func() tea.Msg {
				noteSvc.Delete(id)
				return ui.NotesLoaded{Notes: noteSvc.List(notesSort)}
			}
		},
	}
}
