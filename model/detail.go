package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/catalogd/catalog-tui/markdown"
	"github.com/catalogd/catalog-tui/msg"
	"github.com/catalogd/catalog-tui/style"
)

// DetailModel shows a single catalog entry full screen: header, meta
// line, and the markdown body in a scrollable viewport.
type DetailModel struct {
	item    msg.Item
	vp      viewport.Model
	width   int
	height  int
	loaded  bool
	loading bool
}

// NewDetail returns an empty DetailModel.
func NewDetail() DetailModel {
	return DetailModel{vp: viewport.New(80, 20)}
}

// SetLoading marks the detail as waiting for the full body fetch.
func (m *DetailModel) SetLoading(loading bool) {
	m.loading = loading
}

// Loading reports whether a fetch is in flight.
func (m DetailModel) Loading() bool { return m.loading }

// SetItem fills the view with a fetched entry and renders its body.
func (m *DetailModel) SetItem(it msg.Item) {
	m.item = it
	m.loaded = true
	m.loading = false
	m.renderBody()
}

// Item returns the displayed entry.
func (m DetailModel) Item() msg.Item { return m.item }

// SetSize resizes the viewport and re-renders the body to the new wrap
// width.
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width - 4
	m.vp.Height = height - 5 // header + meta + border
	if m.vp.Height < 3 {
		m.vp.Height = 3
	}
	if m.loaded {
		m.renderBody()
	}
}

func (m *DetailModel) renderBody() {
	wrap := m.vp.Width
	if wrap < 20 {
		wrap = 20
	}
	body := m.item.Body
	if strings.TrimSpace(body) == "" {
		body = m.item.Summary
	}
	m.vp.SetContent(markdown.RenderWidth(body, wrap))
	m.vp.GotoTop()
}

// Update forwards scrolling to the viewport.
func (m DetailModel) Update(message tea.Msg) (DetailModel, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(message)
	return m, cmd
}

// View renders the detail screen.
func (m DetailModel) View() string {
	if m.loading {
		return style.Faint.Render("  Loading entry…")
	}
	if !m.loaded {
		return ""
	}
	title := style.DetailTitle.Render(m.item.Name)
	meta := m.metaLine()
	body := m.vp.View()
	if bar := style.Scrollbar(m.vp.YOffset, m.vp.Height, m.vp.TotalLineCount(), m.vp.Height); bar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
	}
	return title + "\n" + meta + "\n" + style.DetailBorder.Width(m.width-2).Render(body) +
		"\n" + style.Hint.Render("  esc back · ↑/↓ scroll")
}

func (m DetailModel) metaLine() string {
	var parts []string
	if m.item.Category != "" {
		parts = append(parts, m.item.Category)
	}
	if m.item.Rating > 0 {
		parts = append(parts, fmt.Sprintf("%.1f★", m.item.Rating))
	}
	if len(m.item.Tags) > 0 {
		parts = append(parts, strings.Join(m.item.Tags, ", "))
	}
	if m.item.UpdatedAt != "" {
		parts = append(parts, "updated "+m.item.UpdatedAt)
	}
	return style.DetailMeta.Render(strings.Join(parts, " · "))
}
