package model

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/catalogd/catalog-tui/msg"
	"github.com/catalogd/catalog-tui/style"
)

// JumpDismissMsg is sent when the user closes the jump palette.
type JumpDismissMsg struct{}

// JumpModel is the jump overlay: type an index to scroll straight to
// it, or text to find the first entry whose name matches.
type JumpModel struct {
	active bool
	input  textinput.Model
	names  []string
	width  int
	height int
}

// NewJump constructs a JumpModel.
func NewJump() JumpModel {
	ti := textinput.New()
	ti.Placeholder = "index or name…"
	ti.Prompt = "» "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(style.Primary)
	return JumpModel{input: ti}
}

// Open activates the palette over the given entry names.
func (m *JumpModel) Open(names []string, width, height int) tea.Cmd {
	m.active = true
	m.names = names
	m.width = width
	m.height = height
	m.input.SetValue("")
	m.input.Width = width/2 - 6
	return m.input.Focus()
}

// IsActive reports whether the overlay is visible.
func (m JumpModel) IsActive() bool { return m.active }

// Update handles keyboard events for the palette.
func (m JumpModel) Update(message tea.Msg) (JumpModel, tea.Cmd) {
	switch v := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(v, key.NewBinding(key.WithKeys("esc"))),
			key.Matches(v, key.NewBinding(key.WithKeys("ctrl+c"))):
			m.active = false
			m.input.Blur()
			return m, func() tea.Msg { return JumpDismissMsg{} }

		case key.Matches(v, key.NewBinding(key.WithKeys("enter"))):
			target, ok := m.resolve(strings.TrimSpace(m.input.Value()))
			m.active = false
			m.input.Blur()
			if !ok {
				return m, func() tea.Msg { return JumpDismissMsg{} }
			}
			return m, func() tea.Msg { return msg.JumpToIndex{Index: target, Smooth: true} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(message)
	return m, cmd
}

// resolve turns the query into a target index: a bare number jumps by
// position (1-based for readability), anything else matches names.
func (m JumpModel) resolve(query string) (int, bool) {
	if query == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(query); err == nil {
		return n - 1, true
	}
	q := strings.ToLower(query)
	for i, name := range m.names {
		if strings.Contains(strings.ToLower(name), q) {
			return i, true
		}
	}
	return 0, false
}

// View renders the palette as a centered overlay.
func (m JumpModel) View() string {
	if !m.active {
		return ""
	}
	boxWidth := m.width / 2
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > m.width-4 {
		boxWidth = m.width - 4
	}

	var sb strings.Builder
	sb.WriteString(style.PalettePrompt.Render("Jump to entry"))
	sb.WriteByte('\n')
	sb.WriteString(m.input.View())
	sb.WriteByte('\n')
	sb.WriteString(style.Hint.Render("number = position · text = first name match · esc cancels"))

	box := style.PaletteBorder.Width(boxWidth).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
