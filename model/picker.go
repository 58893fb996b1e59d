package model

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/catalogd/catalog-tui/style"
)

// PickerChoice is emitted when the user selects a category. An empty
// Category clears the filter.
type PickerChoice struct {
	Category string
}

// PickerCancel is emitted when the user presses Esc.
type PickerCancel struct{}

// PickerModel renders a vertical list of categories with arrow-key
// navigation, used to filter the catalog.
type PickerModel struct {
	categories []string
	current    string
	cursor     int
	active     bool
	width      int
	offset     int // scroll offset for long lists
	pageSize   int // visible entries per page
}

// NewPicker returns a zero-value PickerModel.
func NewPicker() PickerModel {
	return PickerModel{pageSize: 12}
}

// Open activates the picker. The first entry is always "all entries";
// the cursor starts on the currently applied filter.
func (m *PickerModel) Open(categories []string, current string, width int) {
	m.categories = append([]string{""}, categories...)
	m.current = current
	m.cursor = 0
	m.offset = 0
	m.active = true
	m.width = width
	for i, c := range m.categories {
		if c == current {
			m.cursor = i
			if m.cursor >= m.pageSize {
				m.offset = m.cursor - m.pageSize/2
				if m.offset+m.pageSize > len(m.categories) {
					m.offset = len(m.categories) - m.pageSize
				}
				if m.offset < 0 {
					m.offset = 0
				}
			}
			break
		}
	}
}

// Clear deactivates the picker.
func (m *PickerModel) Clear() {
	m.active = false
	m.categories = nil
	m.cursor = 0
	m.offset = 0
}

// IsActive reports whether the picker is currently visible.
func (m PickerModel) IsActive() bool {
	return m.active
}

// Update handles navigation and selection keys.
func (m PickerModel) Update(message tea.Msg) (PickerModel, tea.Cmd) {
	k, ok := message.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "esc", "ctrl+c":
		m.Clear()
		return m, func() tea.Msg { return PickerCancel{} }

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < len(m.categories)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.pageSize {
				m.offset = m.cursor - m.pageSize + 1
			}
		}

	case "enter":
		choice := m.categories[m.cursor]
		m.Clear()
		return m, func() tea.Msg { return PickerChoice{Category: choice} }
	}
	return m, nil
}

// View renders the picker list.
func (m PickerModel) View() string {
	if !m.active {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(style.PalettePrompt.Render("Filter by category"))
	sb.WriteByte('\n')

	end := m.offset + m.pageSize
	if end > len(m.categories) {
		end = len(m.categories)
	}
	for i := m.offset; i < end; i++ {
		label := m.categories[i]
		if label == "" {
			label = "all entries"
		}
		marker := "  "
		if m.categories[i] == m.current {
			marker = "• "
		}
		if i == m.cursor {
			sb.WriteString(lipgloss.NewStyle().Foreground(style.Primary).Bold(true).Render("> " + label))
		} else {
			sb.WriteString(style.Faint.Render(marker + label))
		}
		sb.WriteByte('\n')
	}
	if end < len(m.categories) {
		sb.WriteString(style.Hint.Render(fmt.Sprintf("  … %d more", len(m.categories)-end)))
		sb.WriteByte('\n')
	}
	sb.WriteString(style.Hint.Render("enter select · esc cancel"))

	return style.PaletteBorder.Render(sb.String())
}
