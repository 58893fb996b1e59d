package virt

import (
	"fmt"
	"strconv"
)

// DefaultGridOverscan is the number of extra rows materialized on each
// side of the visible range in grid layouts. Rows are tall, so fewer
// are needed than for lists.
const DefaultGridOverscan = 2

// Cell is one slot of a grid row. Pad cells fill the trailing row so
// every row keeps a uniform column count.
type Cell struct {
	// Index is the flat item index, or -1 for a pad cell.
	Index int
	Key   string
	Pad   bool
}

// Row is a materialized grid row: the unit the grid actually
// virtualizes. Cells of a visible row always render together.
type Row struct {
	Index int
	Key   string
	Start int
	Size  int
	Cells []Cell
}

// Grid packs a flat item sequence into fixed-width rows and virtualizes
// the rows. A row's key derives from its first item, so repacking after
// a column-count change resets row measurements wherever the leading
// item shifted.
type Grid struct {
	core        *Virtualizer
	count       int
	columns     int
	gap         int
	rowEstimate int
	keyOf       func(index int) string
}

// NewGrid builds a grid over count items keyed by keyOf, packed at
// layout.Columns per row, with a uniform vertical gap between rows.
func NewGrid(count int, keyOf func(index int) string, layout ColumnLayout, gap int) *Grid {
	if keyOf == nil {
		keyOf = strconv.Itoa
	}
	g := &Grid{
		count:       count,
		columns:     max(1, layout.Columns),
		gap:         max(0, gap),
		rowEstimate: layout.RowEstimate,
		keyOf:       keyOf,
	}
	g.core = New(Config{
		Count:        g.RowCount(),
		EstimateSize: func(int) int { return g.rowEstimate },
		KeyOf:        g.rowKey,
		Overscan:     DefaultGridOverscan,
		Gap:          g.gap,
	})
	return g
}

// Columns returns the current column count.
func (g *Grid) Columns() int { return g.columns }

// ItemCount returns the flat item count.
func (g *Grid) ItemCount() int { return g.count }

// RowCount returns ceil(items / columns).
func (g *Grid) RowCount() int {
	return (g.count + g.columns - 1) / g.columns
}

func (g *Grid) rowKey(row int) string {
	return g.keyOf(row * g.columns)
}

// SetViewport records the viewport extent along the scroll axis.
func (g *Grid) SetViewport(extent int) { g.core.SetViewport(extent) }

// SetScrollOffset records a new scroll offset; never fails.
func (g *Grid) SetScrollOffset(offset int) { g.core.SetScrollOffset(offset) }

// ScrollOffset returns the last observed scroll offset.
func (g *Grid) ScrollOffset() int { return g.core.ScrollOffset() }

// Phase reports the core's last activity.
func (g *Grid) Phase() Phase { return g.core.Phase() }

// Quiesce returns the core to the idle phase.
func (g *Grid) Quiesce() { g.core.Quiesce() }

// TotalSize returns the rendered extent of all rows, gaps included.
func (g *Grid) TotalSize() int { return g.core.TotalSize() }

// MeasureRow records the rendered height of a row. Non-positive sizes
// and out-of-range rows are ignored.
func (g *Grid) MeasureRow(row, size int) { g.core.Measure(row, size) }

// Rows materializes the visible row window, each row expanded into its
// cells with the trailing row padded to the full column count. Starts
// are in rendered (gapped) coordinates.
func (g *Grid) Rows() []Row {
	items := g.core.Items()
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := Row{
			Index: it.Index,
			Key:   it.Key,
			Start: it.Start,
			Size:  it.Size,
			Cells: make([]Cell, g.columns),
		}
		for col := 0; col < g.columns; col++ {
			idx := it.Index*g.columns + col
			if idx < g.count {
				row.Cells[col] = Cell{Index: idx, Key: g.keyOf(idx)}
			} else {
				row.Cells[col] = Cell{Index: -1, Pad: true}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ScrollToItem scrolls so the row containing flat item index lands per
// align and returns the rendered target offset. Panics if index is out
// of range.
func (g *Grid) ScrollToItem(index int, align Align) int {
	if index < 0 || index >= g.count {
		panic(fmt.Sprintf("virt: scroll to item %d out of range [0,%d)", index, g.count))
	}
	return g.core.ScrollToIndex(index/g.columns, align)
}

// SetColumns repacks the grid at a new layout. The raw scroll offset is
// preserved; the visible range re-derives from the new row space, so a
// breakpoint crossing may land on different content at the same offset.
func (g *Grid) SetColumns(layout ColumnLayout) {
	cols := max(1, layout.Columns)
	if cols == g.columns {
		return
	}
	g.columns = cols
	g.rowEstimate = layout.RowEstimate
	g.repack()
}

// SetItems replaces the flat item sequence and repacks. Row
// measurements survive where the row's leading item is unchanged.
func (g *Grid) SetItems(count int, keyOf func(index int) string) {
	if keyOf == nil {
		keyOf = strconv.Itoa
	}
	g.count = count
	g.keyOf = keyOf
	g.repack()
}

func (g *Grid) repack() {
	g.core.SetCount(g.RowCount(), g.rowKey)
}
