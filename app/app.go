package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/catalogd/catalog-tui/client"
	"github.com/catalogd/catalog-tui/config"
	"github.com/catalogd/catalog-tui/model"
	"github.com/catalogd/catalog-tui/msg"
	"github.com/catalogd/catalog-tui/style"
)

// ProfileDir is where config and state files live; set by main.
var ProfileDir string

type ProgramReady struct{ Program *tea.Program }
type retryHealth struct{}

type Model struct {
	banner model.BannerModel
	browse model.BrowseModel
	detail model.DetailModel
	status model.StatusModel
	toasts model.ToastsModel
	jump   model.JumpModel
	picker model.PickerModel
	spin   spinner.Model

	state      State
	client     *client.Client
	sse        *client.SSEClient
	program    *tea.Program
	cfg        config.Config
	width      int
	height     int
	keys       KeyMap
	items      []msg.Item
	categories []string
	category   string

	confirmQuit bool
}

func New(c *client.Client, cfg config.Config) Model {
	mode := model.ViewList
	if cfg.View == "grid" {
		mode = model.ViewGrid
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = style.SpinnerStyle

	status := model.NewStatus()
	status.SetMode(cfg.View)

	return Model{
		banner: model.NewBanner(),
		browse: model.NewBrowse(mode, cfg.Gap, cfg.Columns),
		detail: model.NewDetail(),
		status: status,
		toasts: model.NewToasts(),
		jump:   model.NewJump(),
		picker: model.NewPicker(),
		spin:   sp,
		state:  StateConnecting,
		client: c,
		cfg:    cfg,
		keys:   DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkHealth(), m.spin.Tick, tea.WindowSize(), m.tickCmd())
}

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.browse.SetSize(v.Width, m.browseHeight())
		m.detail.SetSize(v.Width, v.Height-2)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case tea.MouseMsg:
		if m.state == StateBrowsing {
			var cmd tea.Cmd
			m.browse, cmd = m.browse.Update(v)
			return m, cmd
		}
		return m, nil

	case ProgramReady:
		m.program = v.Program
		if m.state != StateConnecting && m.sse == nil {
			return m, m.startSSE()
		}
		return m, nil

	case msg.HealthResult:
		return m.handleHealth(v)

	case msg.ItemsResult:
		return m.handleItems(v)

	case msg.ItemResult:
		if v.Err != nil {
			m.toasts.Error(fmt.Sprintf("load entry: %v", v.Err))
			m.state = StateBrowsing
			return m, nil
		}
		m.detail.SetItem(v.Item)
		m.detail.SetSize(m.width, m.height-2)
		return m, nil

	case msg.CategoriesResult:
		if v.Err == nil {
			m.categories = v.Categories
		}
		return m, nil

	case retryHealth:
		return m, m.checkHealth()

	// -- Live updates ----------------------------------------------------

	case client.SSEConnectedEvent:
		m.status.SetConnected(true)
		return m, nil

	case client.SSEDisconnectedEvent:
		m.status.SetConnected(false)
		if m.sse != nil && !m.sse.IsClosed() && m.program != nil {
			return m, m.sse.ReconnectListenCmd(m.program)
		}
		return m, nil

	case client.SSEReconnectingEvent:
		m.status.SetReconnecting(v.Attempt)
		return m, nil

	case client.SSEAuthFailedEvent:
		m.toasts.Error("Live updates rejected: check CATALOG_TOKEN")
		m.closeSSE()
		return m, nil

	case client.SSEParseWarning:
		m.toasts.Warn(v.Message)
		return m, nil

	case client.ItemAddedEvent:
		return m.handleItemAdded(toMsgItem(v.Item))

	case client.ItemUpdatedEvent:
		return m.handleItemUpdated(toMsgItem(v.Item))

	case client.ItemRemovedEvent:
		return m.handleItemRemoved(v.ID)

	case client.CatalogReloadedEvent:
		m.toasts.Info(fmt.Sprintf("Catalog reloaded (%d entries)", v.Count))
		return m, m.fetchItems()

	// -- Browse plumbing -------------------------------------------------

	case msg.ScrollChanged:
		m.status.SetScroll(v)
		return m, nil

	case msg.ScrollStep, msg.ScrollSettled:
		var cmd tea.Cmd
		m.browse, cmd = m.browse.Update(rawMsg)
		return m, cmd

	case msg.OpenDetail:
		m.state = StateDetail
		m.detail.SetLoading(true)
		return m, m.fetchItem(v.ID)

	case msg.JumpToIndex:
		var cmd tea.Cmd
		m.browse, cmd = m.browse.JumpTo(v.Index, v.Smooth)
		return m, cmd

	case model.JumpDismissMsg, model.PickerCancel:
		return m, nil

	case model.PickerChoice:
		m.category = v.Category
		if v.Category == "" {
			m.toasts.Info("Filter cleared")
		} else {
			m.toasts.Info("Filtering: " + v.Category)
		}
		return m, m.fetchItems()

	// -- Timers ----------------------------------------------------------

	case spinner.TickMsg:
		if m.state == StateConnecting || m.state == StateLoading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(v)
			return m, cmd
		}
		return m, nil

	case msg.TickMsg:
		m.toasts.Tick()
		return m, m.tickCmd()
	}
	return m, nil
}

func (m Model) View() string {
	var sections []string
	switch m.state {
	case StateConnecting:
		sections = append(sections, m.renderWaiting("Connecting to catalog backend…"))
	case StateLoading:
		sections = append(sections, m.renderWaiting("Loading catalog…"))
	case StateBrowsing:
		sections = append(sections, m.banner.View())
		switch {
		case m.jump.IsActive():
			sections = append(sections, m.jump.View())
		case m.picker.IsActive():
			sections = append(sections, lipgloss.Place(m.width, m.browseHeight(),
				lipgloss.Center, lipgloss.Center, m.picker.View()))
		default:
			sections = append(sections, m.browse.View())
		}
		sections = append(sections, m.status.View())
		sections = append(sections, m.hintLine())
	case StateDetail:
		sections = append(sections, m.banner.View())
		sections = append(sections, m.detail.View())
	}
	if m.toasts.HasToasts() {
		sections = append(sections, m.toasts.View(m.width))
	}
	if m.confirmQuit {
		sections = append(sections, "\n  Press Ctrl+C again to quit, or any key to cancel.")
	}
	return strings.Join(sections, "\n")
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmQuit {
		if k.String() == "ctrl+c" {
			return m.quit()
		}
		m.confirmQuit = false
		return m, nil
	}
	if m.jump.IsActive() {
		var cmd tea.Cmd
		m.jump, cmd = m.jump.Update(k)
		return m, cmd
	}
	if m.picker.IsActive() {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(k)
		return m, cmd
	}
	switch m.state {
	case StateBrowsing:
		return m.handleBrowseKey(k)
	case StateDetail:
		return m.handleDetailKey(k)
	default:
		if k.String() == "ctrl+c" || k.String() == "q" {
			return m.quit()
		}
	}
	return m, nil
}

func (m Model) handleBrowseKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case k.String() == "ctrl+c":
		m.confirmQuit = true
		return m, nil
	case k.String() == "q", key.Matches(k, m.keys.QuitEOF):
		return m.quit()

	case key.Matches(k, m.keys.ToggleView):
		return m.toggleView()

	case key.Matches(k, m.keys.Theme):
		return m.cycleTheme()

	case key.Matches(k, m.keys.Filter):
		m.picker.Open(m.categories, m.category, m.width)
		return m, nil

	case key.Matches(k, m.keys.Jump):
		names := make([]string, len(m.items))
		for i, it := range m.items {
			names[i] = it.Name
		}
		return m, m.jump.Open(names, m.width, m.browseHeight())

	case key.Matches(k, m.keys.Refresh):
		return m, m.fetchItems()
	}
	var cmd tea.Cmd
	m.browse, cmd = m.browse.Update(k)
	return m, cmd
}

func (m Model) handleDetailKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Back), k.String() == "q":
		m.state = StateBrowsing
		return m, nil
	case k.String() == "ctrl+c":
		m.confirmQuit = true
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(k)
	return m, cmd
}

func (m Model) toggleView() (tea.Model, tea.Cmd) {
	if m.browse.Mode() == model.ViewList {
		m.browse.SetMode(model.ViewGrid)
		m.cfg.View = "grid"
	} else {
		m.browse.SetMode(model.ViewList)
		m.cfg.View = "list"
	}
	m.status.SetMode(m.cfg.View)
	m.status.SetScroll(m.browse.ScrollInfo())
	m.saveConfig()
	return m, nil
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	names := style.ThemeNames
	next := names[0]
	for i, n := range names {
		if n == style.CurrentThemeName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	style.SetTheme(next)
	m.cfg.Theme = next
	m.saveConfig()
	m.browse.InvalidateAll()
	m.toasts.Info("Theme: " + next)
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.closeSSE()
	m.saveConfig()
	return m, tea.Quit
}

func (m *Model) saveConfig() {
	if ProfileDir == "" {
		return
	}
	if err := config.Save(ProfileDir, m.cfg); err != nil {
		m.toasts.Warn(fmt.Sprintf("save config: %v", err))
	}
}

// -- Result handlers ----------------------------------------------------------

func (m Model) handleHealth(h msg.HealthResult) (tea.Model, tea.Cmd) {
	if h.Err != nil {
		m.toasts.Error(fmt.Sprintf("Backend unreachable: %v, retrying in 5s", h.Err))
		m.state = StateConnecting
		return m, tea.Tick(5*time.Second, func(time.Time) tea.Msg { return retryHealth{} })
	}
	m.banner.SetHealth(h)
	m.state = StateLoading

	cmds := []tea.Cmd{m.fetchItems(), m.fetchCategories()}
	if m.program != nil {
		if cmd := m.startSSE(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleItems(r msg.ItemsResult) (tea.Model, tea.Cmd) {
	if r.Err != nil {
		m.toasts.Error(fmt.Sprintf("load catalog: %v", r.Err))
		if m.state == StateLoading {
			m.state = StateBrowsing
		}
		return m, nil
	}
	m.items = r.Items
	m.browse.SetItems(m.items)
	m.banner.SetItemCount(len(m.items))
	m.status.SetCount(len(m.items))
	m.status.SetScroll(m.browse.ScrollInfo())
	m.state = StateBrowsing
	return m, nil
}

func (m Model) handleItemAdded(it msg.Item) (tea.Model, tea.Cmd) {
	if m.category != "" && it.Category != m.category {
		return m, nil
	}
	m.items = append(m.items, it)
	m.browse.SetItems(m.items)
	m.banner.SetItemCount(len(m.items))
	m.status.SetCount(len(m.items))
	return m, nil
}

func (m Model) handleItemUpdated(it msg.Item) (tea.Model, tea.Cmd) {
	for i := range m.items {
		if m.items[i].ID == it.ID {
			m.items[i] = it
			m.browse.SetItems(m.items)
			m.browse.InvalidateItem(it.ID)
			break
		}
	}
	if m.state == StateDetail && m.detail.Item().ID == it.ID {
		m.detail.SetItem(it)
	}
	return m, nil
}

func (m Model) handleItemRemoved(id string) (tea.Model, tea.Cmd) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.browse.SetItems(m.items)
			m.banner.SetItemCount(len(m.items))
			m.status.SetCount(len(m.items))
			break
		}
	}
	return m, nil
}

// -- Commands -----------------------------------------------------------------

func (m *Model) startSSE() tea.Cmd {
	if m.program == nil {
		return nil
	}
	m.sse = client.NewSSE(m.client.BaseURL, m.client.Token)
	return m.sse.ListenCmd(m.program)
}

func (m *Model) closeSSE() {
	if m.sse != nil {
		m.sse.Close()
		m.sse = nil
	}
}

func (m Model) checkHealth() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		health, err := c.Health()
		if err != nil {
			return msg.HealthResult{Err: err}
		}
		return msg.HealthResult{
			Status:        health.Status,
			Version:       health.Version,
			UptimeSeconds: health.UptimeSeconds,
			ItemCount:     health.ItemCount,
		}
	}
}

func (m Model) fetchItems() tea.Cmd {
	c := m.client
	category := m.category
	return func() tea.Msg {
		items, err := c.ListItems(category)
		if err != nil {
			return msg.ItemsResult{Err: err}
		}
		return msg.ItemsResult{Items: toMsgItems(items)}
	}
}

func (m Model) fetchItem(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		item, err := c.GetItem(id)
		if err != nil {
			return msg.ItemResult{Err: err}
		}
		return msg.ItemResult{Item: toMsgItem(*item)}
	}
}

func (m Model) fetchCategories() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		categories, err := c.ListCategories()
		if err != nil {
			return msg.CategoriesResult{Err: err}
		}
		return msg.CategoriesResult{Categories: categories}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return msg.TickMsg{} })
}

func toMsgItems(items []client.Item) []msg.Item {
	out := make([]msg.Item, len(items))
	for i, it := range items {
		out[i] = toMsgItem(it)
	}
	return out
}

func toMsgItem(it client.Item) msg.Item {
	return msg.Item{
		ID:        it.ID,
		Name:      it.Name,
		Summary:   it.Summary,
		Body:      it.Body,
		Category:  it.Category,
		Tags:      it.Tags,
		Rating:    it.Rating,
		UpdatedAt: it.UpdatedAt,
	}
}

// browseHeight is the viewport extent handed to the windowing engine:
// everything except the banner, status line and hint line.
func (m Model) browseHeight() int {
	h := m.height - 3
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) renderWaiting(label string) string {
	body := m.spin.View() + " " + style.BannerTitle.Render(label)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) hintLine() string {
	return style.Hint.Render("  ↑/↓ move · enter open · v list/grid · / jump · f filter · t theme · q quit")
}
