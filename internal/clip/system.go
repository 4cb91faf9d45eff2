package clip

import (
	"golang.design/x/clipboard"

	"scizor/internal/logging"
)

type systemBackend struct{}

// New returns the system clipboard backend, or a headless no-op backend
// when the display environment is unavailable (e.g. an SSH session without
// X11). clipboard.Init is called here rather than in init() so that CLI
// sub-commands that never touch the clipboard don't trigger the warning.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		logging.Warn("clipboard unavailable, running headless", "err", err)
		return headlessBackend{}
	}
	return systemBackend{}
}

func (systemBackend) Name() string { return "system clipboard" }

func (systemBackend) ReadText() string {
	return string(clipboard.Read(clipboard.FmtText))
}

func (systemBackend) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (systemBackend) Close() {}

// headlessBackend keeps the rest of the app functional with no clipboard.
type headlessBackend struct{}

func (headlessBackend) Name() string                { return "headless (no clipboard)" }
func (headlessBackend) ReadText() string            { return "" }
func (headlessBackend) WriteText(text string) error { return nil }
func (headlessBackend) Close()                      {}
