package model

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/catalogd/catalog-tui/style"
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarn
	noticeError
)

const (
	noticeLimit = 3
	noticeTTL   = 4 * time.Second
)

// notice is one transient status message.
type notice struct {
	text  string
	level noticeLevel
	added time.Time
}

// ToastsModel holds the transient notices stacked right-aligned below
// the main view. Notices expire on their own; the app's ticker calls
// Tick to prune them.
type ToastsModel struct {
	queue []notice
}

// NewToasts creates an empty ToastsModel.
func NewToasts() ToastsModel {
	return ToastsModel{}
}

// Info queues an informational notice.
func (m *ToastsModel) Info(text string) { m.push(text, noticeInfo) }

// Warn queues a warning notice.
func (m *ToastsModel) Warn(text string) { m.push(text, noticeWarn) }

// Error queues an error notice.
func (m *ToastsModel) Error(text string) { m.push(text, noticeError) }

func (m *ToastsModel) push(text string, level noticeLevel) {
	m.queue = append(m.queue, notice{text: text, level: level, added: time.Now()})
	// The oldest notices yield when the stack is full.
	if len(m.queue) > noticeLimit {
		m.queue = m.queue[len(m.queue)-noticeLimit:]
	}
}

// Tick drops notices older than their display window.
func (m *ToastsModel) Tick() {
	cutoff := time.Now().Add(-noticeTTL)
	alive := m.queue[:0]
	for _, n := range m.queue {
		if n.added.After(cutoff) {
			alive = append(alive, n)
		}
	}
	m.queue = alive
}

// HasToasts reports whether anything is on screen.
func (m ToastsModel) HasToasts() bool {
	return len(m.queue) > 0
}

// View renders the stack right-aligned in termWidth columns.
func (m ToastsModel) View(termWidth int) string {
	if len(m.queue) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.queue))
	for _, n := range m.queue {
		glyph, color := noticeGlyph(n.level)
		line := lipgloss.NewStyle().
			Foreground(color).
			Render(" " + glyph + " " + n.text + " ")
		lines = append(lines, lipgloss.PlaceHorizontal(termWidth, lipgloss.Right, line))
	}
	return strings.Join(lines, "\n")
}

func noticeGlyph(level noticeLevel) (string, lipgloss.TerminalColor) {
	switch level {
	case noticeWarn:
		return "⚠", style.Warning
	case noticeError:
		return "✘", style.Error
	default:
		return "✓", style.Success
	}
}
