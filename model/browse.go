package model

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/catalogd/catalog-tui/msg"
	"github.com/catalogd/catalog-tui/style"
	"github.com/catalogd/catalog-tui/virt"
)

// ViewMode selects the browse layout.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewGrid
)

const (
	listEstimate = 6 // unmeasured card height, border included

	scrollStepDelay = 25 * time.Millisecond
	scrollSettle    = 300 * time.Millisecond
	wheelStep       = 3
)

// BrowseModel is the catalog view. It renders tens of thousands of
// entries through the windowing engine: only the cards near the
// viewport are ever built, and each rendered card's real height is fed
// back so the window stays accurate as content wraps differently per
// item. A zero-item catalog bypasses the engine entirely and shows an
// explicit empty state.
type BrowseModel struct {
	items []msg.Item
	mode  ViewMode

	list   *virt.List
	grid   *virt.Grid
	layout virt.ColumnLayout

	sel    int
	width  int
	height int
	gap    int
	// colOverride pins the grid column count; 0 resolves from width.
	colOverride int

	// cache holds rendered cards keyed by item key, width and selection.
	cache map[string]string

	scrollSeq  int
	animating  bool
	animTarget int
}

// NewBrowse constructs an empty BrowseModel.
func NewBrowse(mode ViewMode, gap, colOverride int) BrowseModel {
	m := BrowseModel{
		mode:        mode,
		gap:         gap,
		colOverride: colOverride,
		layout:      virt.ColumnLayout{Columns: 1, RowEstimate: listEstimate},
		cache:       make(map[string]string),
		width:       80,
		height:      24,
	}
	m.list = virt.NewList(virt.Config{
		EstimateSize: func(int) int { return listEstimate },
	}, gap)
	m.grid = virt.NewGrid(0, nil, m.layout, gap)
	return m
}

// Mode returns the active layout.
func (m BrowseModel) Mode() ViewMode { return m.mode }

// SetMode switches between list and grid layout, keeping the selection.
func (m *BrowseModel) SetMode(mode ViewMode) {
	if mode == m.mode {
		return
	}
	m.mode = mode
	m.animating = false
	m.ensureSelectionVisible()
}

// Count returns the number of catalog entries.
func (m BrowseModel) Count() int { return len(m.items) }

// Selected returns the highlighted entry.
func (m BrowseModel) Selected() (msg.Item, bool) {
	if m.sel < 0 || m.sel >= len(m.items) {
		return msg.Item{}, false
	}
	return m.items[m.sel], true
}

// SetItems replaces the catalog. Measured card heights survive for
// entries whose identity is unchanged at the same position.
func (m *BrowseModel) SetItems(items []msg.Item) {
	m.items = items
	keyOf := func(i int) string { return items[i].ID }
	m.list.SetCount(len(items), keyOf)
	m.grid.SetItems(len(items), keyOf)
	m.cache = make(map[string]string)
	if m.sel >= len(items) {
		m.sel = len(items) - 1
	}
	if m.sel < 0 {
		m.sel = 0
	}
	m.clampScroll()
}

// SetSize updates the viewport and re-resolves the grid column count
// from the new width.
func (m *BrowseModel) SetSize(width, height int) {
	if width != m.width {
		m.cache = make(map[string]string)
	}
	m.width = width
	m.height = height
	m.list.SetViewport(height)
	m.grid.SetViewport(height)

	layout := virt.ResolveColumns(width)
	if m.colOverride > 0 {
		layout.Columns = m.colOverride
	}
	m.layout = layout
	m.grid.SetColumns(layout)
}

// ScrollInfo reports the scroll state for the status readout.
func (m BrowseModel) ScrollInfo() msg.ScrollChanged {
	info := msg.ScrollChanged{}
	switch m.mode {
	case ViewGrid:
		info.Offset = m.grid.ScrollOffset()
		info.Total = m.grid.TotalSize()
		// Row range reported in item terms.
		rows := m.grid.Rows()
		if len(rows) > 0 {
			info.Lo = rows[0].Index * m.grid.Columns()
			hi := (rows[len(rows)-1].Index+1)*m.grid.Columns() - 1
			if hi > len(m.items)-1 {
				hi = len(m.items) - 1
			}
			info.Hi = hi
		}
	default:
		info.Offset = m.list.ScrollOffset()
		info.Total = m.list.TotalSize()
		lo, hi := m.list.Range()
		if hi >= lo {
			info.Lo, info.Hi = lo, hi
		}
	}
	return info
}

// Update handles navigation, wheel scrolling and animation frames.
func (m BrowseModel) Update(message tea.Msg) (BrowseModel, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	switch v := message.(type) {
	case tea.KeyMsg:
		return m.handleKey(v)

	case tea.MouseMsg:
		switch v.Button {
		case tea.MouseButtonWheelUp:
			return m.scrollBy(-wheelStep)
		case tea.MouseButtonWheelDown:
			return m.scrollBy(wheelStep)
		}
		return m, nil

	case msg.ScrollStep:
		return m.animate(v.Seq)

	case msg.ScrollSettled:
		if v.Seq == m.scrollSeq && !m.animating {
			m.list.Quiesce()
			m.grid.Quiesce()
		}
		return m, nil
	}
	return m, nil
}

func (m BrowseModel) handleKey(k tea.KeyMsg) (BrowseModel, tea.Cmd) {
	stride := 1
	if m.mode == ViewGrid {
		stride = m.grid.Columns()
	}
	switch k.String() {
	case "up", "k":
		return m.moveSelection(-stride)
	case "down", "j":
		return m.moveSelection(stride)
	case "left", "h":
		if m.mode == ViewGrid {
			return m.moveSelection(-1)
		}
	case "right", "l":
		if m.mode == ViewGrid {
			return m.moveSelection(1)
		}
	case "pgup":
		return m.scrollBy(-m.height)
	case "pgdown":
		return m.scrollBy(m.height)
	case "home", "g":
		return m.JumpTo(0, false)
	case "end", "G":
		return m.JumpTo(len(m.items)-1, false)
	case "enter":
		if it, ok := m.Selected(); ok {
			return m, func() tea.Msg { return msg.OpenDetail{ID: it.ID} }
		}
	}
	return m, nil
}

func (m BrowseModel) moveSelection(delta int) (BrowseModel, tea.Cmd) {
	next := m.sel + delta
	if next < 0 {
		next = 0
	}
	if next > len(m.items)-1 {
		next = len(m.items) - 1
	}
	if next == m.sel {
		return m, nil
	}
	m.sel = next
	m.animating = false
	m.ensureSelectionVisible()
	return m, m.scrollActivity()
}

// ensureSelectionVisible scrolls the minimum distance to bring the
// highlighted entry into view. The landing window is measured and the
// target recomputed once, so the entry does not drift when its
// neighborhood is first materialized at estimated heights.
func (m *BrowseModel) ensureSelectionVisible() {
	if len(m.items) == 0 {
		return
	}
	m.alignTo(m.sel, virt.AlignAuto)
	m.measureWindow()
	m.alignTo(m.sel, virt.AlignAuto)
	m.clampScroll()
}

func (m *BrowseModel) alignTo(index int, align virt.Align) int {
	switch m.mode {
	case ViewGrid:
		return m.grid.ScrollToItem(index, align)
	default:
		return m.list.ScrollToIndex(index, align)
	}
}

// measureWindow renders and measures every entry in the current window
// so scroll targets are computed against real heights rather than
// estimates. Renders land in the card cache and are reused by View.
func (m *BrowseModel) measureWindow() {
	if m.mode == ViewGrid {
		for _, row := range m.grid.Rows() {
			m.grid.MeasureRow(row.Index, lipgloss.Height(m.rowView(row)))
		}
		return
	}
	for _, it := range m.list.Items() {
		m.list.Measure(it.Index, lipgloss.Height(m.card(it.Index)))
	}
}

// scrollBy shifts the raw offset: a manual scroll that supersedes any
// running jump animation.
func (m BrowseModel) scrollBy(delta int) (BrowseModel, tea.Cmd) {
	m.animating = false
	switch m.mode {
	case ViewGrid:
		m.grid.SetScrollOffset(m.grid.ScrollOffset() + delta)
	default:
		m.list.SetScrollOffset(m.list.ScrollOffset() + delta)
	}
	m.clampScroll()
	return m, m.scrollActivity()
}

// JumpTo scrolls the view so that index lands at the top, optionally
// animated. Out-of-range requests from the palette are clamped, not
// failed: this is user input, not an indexing bug.
func (m BrowseModel) JumpTo(index int, smooth bool) (BrowseModel, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	if index < 0 {
		index = 0
	}
	if index > len(m.items)-1 {
		index = len(m.items) - 1
	}
	m.sel = index

	prev := m.activeOffset()
	m.alignTo(index, virt.AlignStart)
	m.measureWindow()
	m.alignTo(index, virt.AlignStart)
	m.clampScroll()
	target := m.activeOffset()

	if !smooth || target == prev {
		m.animating = false
		return m, m.scrollActivity()
	}

	// Animate from the previous offset; each frame moves a quarter of
	// the remaining distance. A manual scroll or a newer jump bumps
	// scrollSeq and orphans the pending frames.
	m.setActiveOffset(prev)
	m.animating = true
	m.animTarget = target
	m.scrollSeq++
	seq := m.scrollSeq
	return m, tea.Tick(scrollStepDelay, func(time.Time) tea.Msg { return msg.ScrollStep{Seq: seq} })
}

func (m BrowseModel) animate(seq int) (BrowseModel, tea.Cmd) {
	if !m.animating || seq != m.scrollSeq {
		return m, nil
	}
	cur := m.activeOffset()
	dist := m.animTarget - cur
	step := dist / 4
	if step == 0 {
		if dist > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	m.setActiveOffset(cur + step)
	if m.activeOffset() == m.animTarget {
		m.animating = false
		return m, m.scrollActivity()
	}
	next := tea.Tick(scrollStepDelay, func(time.Time) tea.Msg { return msg.ScrollStep{Seq: seq} })
	return m, tea.Batch(next, m.scrollChangedCmd())
}

// scrollActivity emits the raw scroll passthrough and schedules the
// quiescence check.
func (m *BrowseModel) scrollActivity() tea.Cmd {
	m.scrollSeq++
	seq := m.scrollSeq
	settle := tea.Tick(scrollSettle, func(time.Time) tea.Msg { return msg.ScrollSettled{Seq: seq} })
	return tea.Batch(m.scrollChangedCmd(), settle)
}

func (m BrowseModel) scrollChangedCmd() tea.Cmd {
	info := m.ScrollInfo()
	return func() tea.Msg { return info }
}

func (m BrowseModel) activeOffset() int {
	if m.mode == ViewGrid {
		return m.grid.ScrollOffset()
	}
	return m.list.ScrollOffset()
}

func (m *BrowseModel) setActiveOffset(o int) {
	if m.mode == ViewGrid {
		m.grid.SetScrollOffset(o)
	} else {
		m.list.SetScrollOffset(o)
	}
	m.clampScroll()
}

// clampScroll keeps the offset within the rendered content. The engine
// only clamps at zero: a high clamp there would break landing an item
// near the end flush with the top, so the upper bound is applied here
// where the visible height is known.
func (m *BrowseModel) clampScroll() {
	var total, offset int
	if m.mode == ViewGrid {
		total, offset = m.grid.TotalSize(), m.grid.ScrollOffset()
	} else {
		total, offset = m.list.TotalSize(), m.list.ScrollOffset()
	}
	limit := total - m.height
	if limit < 0 {
		limit = 0
	}
	if offset > limit {
		if m.mode == ViewGrid {
			m.grid.SetScrollOffset(limit)
		} else {
			m.list.SetScrollOffset(limit)
		}
	}
}

// View renders the visible window.
func (m BrowseModel) View() string {
	if len(m.items) == 0 {
		return m.emptyView()
	}
	if m.mode == ViewGrid {
		return m.viewGrid()
	}
	return m.viewList()
}

func (m BrowseModel) viewList() string {
	// Render and measure pass: correct the engine's height assumptions
	// for every card in the window.
	m.measureWindow()
	// Layout pass with corrected offsets. The window may have shifted
	// slightly if measurements changed, so re-materialize.
	out := make([]string, m.height)
	offset := m.list.ScrollOffset()
	for _, it := range m.list.Items() {
		lines := strings.Split(m.card(it.Index), "\n")
		for li, line := range lines {
			y := it.Start + li - offset
			if y >= 0 && y < m.height {
				out[y] = line
			}
		}
	}
	return strings.Join(out, "\n")
}

func (m BrowseModel) viewGrid() string {
	m.measureWindow()
	out := make([]string, m.height)
	offset := m.grid.ScrollOffset()
	for _, row := range m.grid.Rows() {
		lines := strings.Split(m.rowView(row), "\n")
		for li, line := range lines {
			y := row.Start + li - offset
			if y >= 0 && y < m.height {
				out[y] = line
			}
		}
	}
	return strings.Join(out, "\n")
}

// rowView lays out one grid row: real cells first, then pad cells sized
// to the tallest real cell so the row front stays level.
func (m BrowseModel) rowView(row virt.Row) string {
	cellW := m.width / m.grid.Columns()
	cells := make([]string, 0, len(row.Cells))
	tallest := 1
	for _, c := range row.Cells {
		if c.Pad {
			continue
		}
		card := m.cellCard(c.Index, cellW)
		if h := lipgloss.Height(card); h > tallest {
			tallest = h
		}
		cells = append(cells, card)
	}
	for _, c := range row.Cells {
		if c.Pad {
			cells = append(cells, RenderPadCell(cellW, tallest))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m BrowseModel) card(i int) string {
	return m.cellCard(i, m.width)
}

func (m BrowseModel) cellCard(i, width int) string {
	it := m.items[i]
	selected := i == m.sel
	key := fmt.Sprintf("%s|%d|%t", it.ID, width, selected)
	if r, ok := m.cache[key]; ok {
		return r
	}
	r := RenderCard(it, width, selected)
	m.cache[key] = r
	return r
}

// InvalidateAll drops every cached render, e.g. after a theme change.
func (m *BrowseModel) InvalidateAll() {
	m.cache = make(map[string]string)
}

// InvalidateItem drops the cached renders of one entry after a live
// update changed its content.
func (m *BrowseModel) InvalidateItem(id string) {
	for k := range m.cache {
		if strings.HasPrefix(k, id+"|") {
			delete(m.cache, k)
		}
	}
}

func (m BrowseModel) emptyView() string {
	body := style.EmptyTitle.Render("No items in the catalog") + "\n" +
		style.EmptyHint.Render("The view will refresh when entries arrive.")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
