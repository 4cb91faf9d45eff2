package clip

import "sync"

// Memory is an in-process clipboard used by tests and by the capture
// sequence tests in particular. Safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	text string

	// ReadErr, when true, makes ReadText behave like an unreadable
	// clipboard (returns "").
	ReadErr bool
}

// NewMemory returns a Memory backend holding initial text.
func NewMemory(initial string) *Memory {
	return &Memory{text: initial}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) ReadText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr {
		return ""
	}
	return m.text
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

func (m *Memory) Close() {}
