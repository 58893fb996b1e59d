package model

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/catalogd/catalog-tui/msg"
	"github.com/catalogd/catalog-tui/style"
)

// StatusModel renders the bottom status line: layout mode, visible
// range, scroll position, and connection state. It is fed by the scroll
// passthrough from the browse view and by SSE lifecycle messages.
type StatusModel struct {
	mode      string
	count     int
	scroll    msg.ScrollChanged
	connected bool
	reconnect int
	notice    string
}

// NewStatus returns a zero-value StatusModel.
func NewStatus() StatusModel {
	return StatusModel{mode: "list"}
}

// SetMode sets the displayed layout name.
func (m *StatusModel) SetMode(mode string) {
	m.mode = mode
}

// SetCount sets the catalog entry count.
func (m *StatusModel) SetCount(n int) {
	m.count = n
}

// SetScroll stores the latest scroll passthrough.
func (m *StatusModel) SetScroll(s msg.ScrollChanged) {
	m.scroll = s
}

// SetConnected marks the live-update stream state.
func (m *StatusModel) SetConnected(ok bool) {
	m.connected = ok
	if ok {
		m.reconnect = 0
	}
}

// SetReconnecting records a reconnect attempt for display.
func (m *StatusModel) SetReconnecting(attempt int) {
	m.connected = false
	m.reconnect = attempt
}

// SetNotice sets a transient trailing note (cleared by the caller).
func (m *StatusModel) SetNotice(s string) {
	m.notice = s
}

// Init satisfies tea.Model. No I/O required on start.
func (m StatusModel) Init() tea.Cmd {
	return nil
}

// Update satisfies tea.Model. StatusModel is driven entirely by setter
// calls; no messages are consumed here.
func (m StatusModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the status line.
//
//	GRID · 10000 items · 45–62 · 51% · live
func (m StatusModel) View() string {
	line := style.StatusMode.Render(m.mode)
	line += style.StatusBar.Render(fmt.Sprintf("· %d items", m.count))

	if m.count > 0 && m.scroll.Hi >= m.scroll.Lo {
		line += style.StatusRange.Render(fmt.Sprintf(" · %d–%d", m.scroll.Lo+1, m.scroll.Hi+1))
	}
	if m.scroll.Total > 0 {
		pct := m.scroll.Offset * 100 / m.scroll.Total
		line += style.StatusBar.Render(fmt.Sprintf("· %d%%", pct))
	}

	switch {
	case m.reconnect > 0:
		line += style.ErrorText.Render(fmt.Sprintf(" · reconnecting %d", m.reconnect))
	case m.connected:
		line += style.Faint.Render(" · live")
	default:
		line += style.Faint.Render(" · offline")
	}

	if m.notice != "" {
		line += style.Hint.Render(" · " + m.notice)
	}
	return line
}
