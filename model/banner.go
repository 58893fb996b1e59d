package model

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/catalogd/catalog-tui/msg"
	"github.com/catalogd/catalog-tui/style"
)

// BannerModel renders the one-line header:
//
//	Catalog v1.2 · 10000 entries · dark
//
// It is populated from the health check result and is purely static;
// Update handles no messages.
type BannerModel struct {
	version   string
	itemCount int
}

// NewBanner returns a zero-value BannerModel with a default version string.
func NewBanner() BannerModel {
	return BannerModel{version: "dev"}
}

// SetHealth populates the banner from a HealthResult message.
func (m *BannerModel) SetHealth(h msg.HealthResult) {
	if h.Version != "" {
		m.version = h.Version
	}
	m.itemCount = h.ItemCount
}

// SetItemCount updates the displayed entry count.
func (m *BannerModel) SetItemCount(n int) {
	m.itemCount = n
}

// Init satisfies tea.Model. The banner requires no I/O on start.
func (m BannerModel) Init() tea.Cmd {
	return nil
}

// Update satisfies tea.Model. The banner is static; all messages pass through.
func (m BannerModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the banner line.
func (m BannerModel) View() string {
	muted := lipgloss.NewStyle().Foreground(style.Muted)

	title := style.BannerTitle.Render(fmt.Sprintf("Catalog %s", m.version))
	sep := muted.Render(" · ")
	count := style.BannerDetail.Render(fmt.Sprintf("%d entries", m.itemCount))
	theme := style.BannerDetail.Render(style.CurrentThemeName)

	return title + sep + count + sep + theme
}
