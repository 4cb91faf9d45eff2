package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.hidden {
		return HiddenStyle.Render("Scizor hidden. Press Ctrl+Alt+S to bring it back, q to quit.")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	contentHeight := a.height - 3 // header, tabs, status bar
	if a.errText != "" {
		contentHeight--
	}

	if a.popup != "" {
		b.WriteString(a.renderPopup(contentHeight))
	} else if a.pane == paneHistory {
		b.WriteString(a.renderHistory(contentHeight))
	} else {
		b.WriteString(a.renderNotes(contentHeight))
	}

	if a.errText != "" {
		b.WriteString(ErrorStyle.Width(a.width).Render("Error: " + a.errText))
		b.WriteString("\n")
	}

	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a App) renderHeader() string {
	title := TitleBar.Render("Scizor")

	historyTab := TabInactive.Render(fmt.Sprintf("clipboard (%d)", len(a.entries)))
	notesTab := TabInactive.Render(fmt.Sprintf("notes (%d)", len(a.notes)))
	if a.pane == paneHistory {
		historyTab = TabActive.Render(fmt.Sprintf("clipboard (%d)", len(a.entries)))
	} else {
		notesTab = TabActive.Render(fmt.Sprintf("notes (%d)", len(a.notes)))
	}

	busy := ""
	if a.aiBusy {
		busy = " " + a.spin.View() + string(a.aiKind)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", historyTab, notesTab, busy) + "\n"
}

func (a App) renderHistory(height int) string {
	if len(a.entries) == 0 {
		return HiddenStyle.Render("Clipboard history is empty.") + "\n"
	}

	var b strings.Builder
	start, end := visibleWindow(a.cursor, len(a.entries), height)
	for i := start; i < end; i++ {
		e := a.entries[i]
		line := truncate(oneLine(e.Content), a.width-22)
		meta := ItemMeta.Render(relativeTime(e.CreatedAt))
		if i == a.cursor && a.pane == paneHistory {
			b.WriteString(SelectedItem.Render(line) + " " + meta)
		} else {
			b.WriteString(NormalItem.Render(line) + " " + meta)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderNotes(height int) string {
	if len(a.notes) == 0 {
		return HiddenStyle.Render("No notes yet. Select text and press Ctrl+Alt+N.") + "\n"
	}

	var b strings.Builder
	start, end := visibleWindow(a.cursor, len(a.notes), height)
	for i := start; i < end; i++ {
		n := a.notes[i]
		title := n.Title
		if title == "" {
			title = oneLine(n.Content)
		}
		line := truncate(title, a.width-18)
		badge := PriorityBadge.Render(strings.Repeat("!", n.Priority))
		if i == a.cursor && a.pane == paneNotes {
			b.WriteString(SelectedItem.Render(line) + " " + badge)
		} else {
			b.WriteString(NormalItem.Render(line) + " " + badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderPopup(height int) string {
	width := a.width - 8
	if width < 20 {
		width = 20
	}

	content := PopupTitle.Render(a.popupTitle) + "\n\n" + a.popup +
		"\n\n" + StatusBarText.Render("esc to close")

	return PopupBox.Width(width).Render(content) + "\n"
}

func (a App) renderStatusBar() string {
	hints := StatusBarKey.Render("tab") + StatusBarText.Render(" pane  ") +
		StatusBarKey.Render("enter") + StatusBarText.Render(" copy  ") +
		StatusBarKey.Render("d") + StatusBarText.Render(" delete  ") +
		StatusBarKey.Render("C") + StatusBarText.Render(" clear  ") +
		StatusBarKey.Render("q") + StatusBarText.Render(" quit")

	return StatusBar.Width(a.width).Render(a.status + "  " + hints)
}

// visibleWindow computes the scroll window keeping cursor in view.
func visibleWindow(cursor, total, height int) (start, end int) {
	if height <= 0 {
		height = 1
	}
	if total <= height {
		return 0, total
	}
	start = cursor - height/2
	if start < 0 {
		start = 0
	}
	end = start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}

func oneLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// relativeTime renders timestamps the way a history list reads naturally.
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}
