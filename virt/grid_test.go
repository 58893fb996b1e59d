package virt

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout(columns, rowEstimate int) ColumnLayout {
	return ColumnLayout{Columns: columns, RowEstimate: rowEstimate}
}

func TestGridPacking(t *testing.T) {
	t.Parallel()

	t.Run("ten items in three columns pack into four rows", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(10, strconv.Itoa, testLayout(3, 6), 0)
		g.SetViewport(1000)

		require.Equal(t, 4, g.RowCount())
		rows := g.Rows()
		require.Len(t, rows, 4)

		for r, row := range rows {
			require.Len(t, row.Cells, 3)
			assert.Equal(t, r, row.Index)
		}
		assert.Equal(t, []Cell{{Index: 0, Key: "0"}, {Index: 1, Key: "1"}, {Index: 2, Key: "2"}}, rows[0].Cells)
		assert.Equal(t, []Cell{{Index: 9, Key: "9"}, {Index: -1, Pad: true}, {Index: -1, Pad: true}}, rows[3].Cells)
	})

	t.Run("row counts across divisibility", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			items, columns, rows, realLast int
		}{
			{12, 3, 4, 3},
			{13, 4, 4, 1},
			{1, 4, 1, 1},
			{0, 3, 0, 0},
			{7, 1, 7, 1},
		}
		for _, tc := range cases {
			tc := tc
			t.Run(fmt.Sprintf("%d items %d cols", tc.items, tc.columns), func(t *testing.T) {
				t.Parallel()
				g := NewGrid(tc.items, strconv.Itoa, testLayout(tc.columns, 6), 0)
				g.SetViewport(10000)

				assert.Equal(t, tc.rows, g.RowCount())
				rows := g.Rows()
				if tc.rows == 0 {
					assert.Empty(t, rows)
					return
				}
				last := rows[len(rows)-1]
				real := 0
				for _, c := range last.Cells {
					if !c.Pad {
						real++
					}
				}
				assert.Equal(t, tc.realLast, real)
				assert.Equal(t, tc.columns-tc.realLast, len(last.Cells)-real)
			})
		}
	})

	t.Run("row key derives from the first real cell", func(t *testing.T) {
		t.Parallel()
		keyOf := func(i int) string { return fmt.Sprintf("item-%d", i) }
		g := NewGrid(10, keyOf, testLayout(3, 6), 0)
		g.SetViewport(1000)
		rows := g.Rows()
		assert.Equal(t, "item-0", rows[0].Key)
		assert.Equal(t, "item-3", rows[1].Key)
		assert.Equal(t, "item-9", rows[3].Key)
	})
}

func TestGridGeometry(t *testing.T) {
	t.Parallel()

	t.Run("row gap is additive", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(12, strconv.Itoa, testLayout(3, 6), 1)
		g.SetViewport(100)
		assert.Equal(t, 4*6+3, g.TotalSize())

		rows := g.Rows()
		for _, row := range rows {
			assert.Equal(t, row.Index*6+row.Index, row.Start)
		}
	})

	t.Run("measured row height shifts later rows", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(30, strconv.Itoa, testLayout(3, 6), 0)
		g.SetViewport(100)

		g.MeasureRow(0, 9)

		rows := g.Rows()
		assert.Equal(t, 9, rows[0].Size)
		assert.Equal(t, 9, rows[1].Start)
	})

	t.Run("gapped rows cover the viewport at any offset", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(300, strconv.Itoa, testLayout(3, 6), 2)
		g.SetViewport(30)
		g.MeasureRow(0, 9)
		g.MeasureRow(40, 3)

		for scroll := 0; scroll < g.TotalSize(); scroll += 23 {
			g.SetScrollOffset(scroll)
			seen := make(map[int]bool)
			for _, row := range g.Rows() {
				seen[row.Index] = true
			}
			for r := 0; r < g.RowCount(); r++ {
				start := g.core.Offset(r)
				if start < scroll+30 && start+g.core.Size(r) > scroll {
					require.True(t, seen[r],
						"row %d intersects viewport at scroll %d", r, scroll)
				}
			}
			// The window itself must intersect the viewport.
			rows := g.Rows()
			require.NotEmpty(t, rows, "no rows at scroll %d", scroll)
			first, last := rows[0], rows[len(rows)-1]
			assert.Less(t, first.Start, scroll+30)
			assert.Greater(t, last.Start+last.Size, scroll)
		}
	})

	t.Run("deep scroll to item keeps its row in the window", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(10000, strconv.Itoa, testLayout(4, 8), 1)
		g.SetViewport(30)

		target := g.ScrollToItem(9000, AlignStart)
		assert.Equal(t, 2250*9, target) // row 2250, height 8 plus 1 gap

		rows := g.Rows()
		require.NotEmpty(t, rows)
		var hit *Row
		for i := range rows {
			if rows[i].Index == 2250 {
				hit = &rows[i]
			}
		}
		require.NotNil(t, hit, "target row missing from the window")
		assert.Equal(t, target, hit.Start)
	})

	t.Run("scroll to item targets its row", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(100, strconv.Itoa, testLayout(4, 8), 0)
		g.SetViewport(40)

		target := g.ScrollToItem(42, AlignStart)

		assert.Equal(t, 10*8, target) // row 10
		assert.Equal(t, target, g.ScrollOffset())
	})

	t.Run("scroll to item out of range panics", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(10, strconv.Itoa, testLayout(3, 6), 0)
		assert.Panics(t, func() { g.ScrollToItem(10, AlignStart) })
	})
}

func TestGridRepack(t *testing.T) {
	t.Parallel()

	t.Run("column change repacks and keeps the raw offset", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(100, strconv.Itoa, testLayout(4, 8), 0)
		g.SetViewport(40)
		g.SetScrollOffset(64)

		g.SetColumns(testLayout(2, 8))

		// The offset is preserved; the range re-derives in the new row
		// space, so the same offset now shows different items.
		assert.Equal(t, 64, g.ScrollOffset())
		assert.Equal(t, 50, g.RowCount())
		rows := g.Rows()
		require.NotEmpty(t, rows)
		for _, row := range rows {
			require.Len(t, row.Cells, 2)
		}
	})

	t.Run("row measurements survive only where the leading item is stable", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(100, strconv.Itoa, testLayout(2, 8), 0)
		g.SetViewport(40)
		g.MeasureRow(0, 12) // leads with item 0
		g.MeasureRow(1, 14) // leads with item 2

		g.SetColumns(testLayout(4, 8))

		// Row 0 still leads with item 0, row 1 now leads with item 4.
		rows := g.Rows()
		assert.Equal(t, 12, rows[0].Size)
		assert.Equal(t, 8, rows[1].Size)
	})

	t.Run("replacing items reconciles by key", func(t *testing.T) {
		t.Parallel()
		keyA := func(i int) string { return fmt.Sprintf("a-%d", i) }
		g := NewGrid(9, keyA, testLayout(3, 6), 0)
		g.SetViewport(100)
		g.MeasureRow(0, 10)

		g.SetItems(12, keyA)

		rows := g.Rows()
		assert.Equal(t, 4, g.RowCount())
		assert.Equal(t, 10, rows[0].Size)
	})

	t.Run("same column count is a no op", func(t *testing.T) {
		t.Parallel()
		g := NewGrid(10, strconv.Itoa, testLayout(3, 6), 0)
		g.SetViewport(100)
		g.MeasureRow(0, 9)
		g.SetColumns(testLayout(3, 6))
		assert.Equal(t, 9, g.Rows()[0].Size)
	})
}
