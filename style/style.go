package style

import "github.com/charmbracelet/lipgloss"

// Colors, repopulated from the active theme by SetTheme.
var (
	Primary   lipgloss.TerminalColor = lipgloss.Color("#7C3AED") // violet-600
	Secondary lipgloss.TerminalColor = lipgloss.Color("#06B6D4") // cyan-500
	Success   lipgloss.TerminalColor = lipgloss.Color("#22C55E") // green-500
	Warning   lipgloss.TerminalColor = lipgloss.Color("#F59E0B") // amber-500
	Error     lipgloss.TerminalColor = lipgloss.Color("#EF4444") // red-500
	Muted     lipgloss.TerminalColor = lipgloss.Color("#6B7280") // gray-500
	Dim       lipgloss.TerminalColor = lipgloss.Color("#374151") // gray-700
	Border    lipgloss.TerminalColor = lipgloss.Color("#4B5563") // gray-600
)

// Base styles.
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Faint     = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	// Banner
	BannerTitle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
	BannerDetail = lipgloss.NewStyle().
			Foreground(Muted)

	// Cards
	CardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
	CardSelected = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
	CardTitle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)
	CardSummary = lipgloss.NewStyle().
			Foreground(Muted)
	CardCategory = lipgloss.NewStyle().
			Foreground(Primary)
	CardRating = lipgloss.NewStyle().
			Foreground(Warning)
	CardPad = lipgloss.NewStyle().
		Foreground(Dim)

	// Spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(Muted).
			PaddingLeft(1)
	StatusRange = lipgloss.NewStyle().
			Foreground(Secondary)
	StatusMode = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Detail view
	DetailBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 2)
	DetailTitle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
	DetailMeta = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Jump palette
	PaletteBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
	PalettePrompt = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Empty state
	EmptyTitle = lipgloss.NewStyle().
			Foreground(Muted).
			Bold(true)
	EmptyHint = lipgloss.NewStyle().
			Foreground(Dim)

	// Hint text (key help)
	Hint = lipgloss.NewStyle().
		Foreground(Dim)
)

// SetTheme activates the named theme, repopulating the color and style
// variables. Unknown names are ignored.
func SetTheme(name string) {
	t, ok := Themes[name]
	if !ok {
		return
	}
	CurrentThemeName = name

	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border

	Faint = Faint.Foreground(Muted)
	ErrorText = ErrorText.Foreground(Error)
	BannerTitle = BannerTitle.Foreground(Primary)
	BannerDetail = BannerDetail.Foreground(Muted)
	CardBorder = CardBorder.BorderForeground(Border)
	CardSelected = CardSelected.BorderForeground(Primary)
	CardTitle = CardTitle.Foreground(Secondary)
	CardSummary = CardSummary.Foreground(Muted)
	CardCategory = CardCategory.Foreground(Primary)
	CardRating = CardRating.Foreground(Warning)
	CardPad = CardPad.Foreground(Dim)
	SpinnerStyle = SpinnerStyle.Foreground(Primary)
	StatusBar = StatusBar.Foreground(Muted)
	StatusRange = StatusRange.Foreground(Secondary)
	StatusMode = StatusMode.Foreground(Primary)
	DetailBorder = DetailBorder.BorderForeground(Border)
	DetailTitle = DetailTitle.Foreground(Primary)
	DetailMeta = DetailMeta.Foreground(Muted)
	PaletteBorder = PaletteBorder.BorderForeground(Primary)
	PalettePrompt = PalettePrompt.Foreground(Primary)
	EmptyTitle = EmptyTitle.Foreground(Muted)
	EmptyHint = EmptyHint.Foreground(Dim)
	Hint = Hint.Foreground(Dim)
}

// Scrollbar renders a proportional thumb for a content of total units
// scrolled to offset within a viewport of extent units, as a column of
// height cells.
func Scrollbar(offset, extent, total, height int) string {
	if total <= extent || height <= 0 {
		return ""
	}
	thumb := height * extent / total
	if thumb < 1 {
		thumb = 1
	}
	maxTop := height - thumb
	top := 0
	if total > extent {
		top = maxTop * offset / (total - extent)
	}
	if top > maxTop {
		top = maxTop
	}

	out := ""
	for i := 0; i < height; i++ {
		if i > 0 {
			out += "\n"
		}
		if i >= top && i < top+thumb {
			out += lipgloss.NewStyle().Foreground(Primary).Render("█")
		} else {
			out += lipgloss.NewStyle().Foreground(Dim).Render("░")
		}
	}
	return out
}
