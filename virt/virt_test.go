package virt

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVirtualizer(count, estimate, extent int) *Virtualizer {
	v := New(Config{Count: count, EstimateSize: constEstimate(estimate)})
	v.SetViewport(extent)
	return v
}

func TestVirtualizerWindow(t *testing.T) {
	t.Parallel()

	t.Run("ten thousand items resolve to a narrow window", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10000, 100, 800)
		v.SetScrollOffset(5000)

		lo, hi := v.Range()
		assert.Equal(t, 45, lo)
		assert.Equal(t, 62, hi)

		items := v.Items()
		require.Len(t, items, 18)
		assert.Equal(t, 45, items[0].Index)
		assert.Equal(t, 4500, items[0].Start)
		assert.Equal(t, 62, items[len(items)-1].Index)
		assert.Equal(t, "45", items[0].Key)
	})

	t.Run("item count stays bounded at every offset", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10000, 100, 800)
		visible := 800/100 + 1 // a partial item at each window edge
		for offset := 0; offset < v.TotalSize(); offset += 531 {
			v.SetScrollOffset(offset)
			assert.LessOrEqual(t, len(v.Items()), visible+2*DefaultOverscan)
		}
	})

	t.Run("items are ordered with monotonic starts", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(500, 120, 600)
		v.SetScrollOffset(31337)
		items := v.Items()
		require.NotEmpty(t, items)
		for i := 1; i < len(items); i++ {
			assert.Equal(t, items[i-1].Index+1, items[i].Index)
			assert.GreaterOrEqual(t, items[i].Start, items[i-1].Start)
		}
	})

	t.Run("zero count yields no items", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(0, 100, 800)
		assert.Nil(t, v.Items())
		assert.Equal(t, 0, v.TotalSize())
	})
}

func TestVirtualizerMeasure(t *testing.T) {
	t.Parallel()

	t.Run("measurement shifts subsequent starts", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(100, 250, 200)

		v.Measure(0, 400)

		items := v.Items()
		require.GreaterOrEqual(t, len(items), 2)
		assert.Equal(t, 0, items[0].Start)
		assert.Equal(t, 400, items[0].Size)
		assert.Equal(t, 400, items[1].Start)
	})

	t.Run("total size tracks the measurement delta", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(1000, 250, 800)
		base := v.TotalSize()
		v.Measure(12, 90)
		assert.Equal(t, base-160, v.TotalSize())
		assert.Equal(t, 90, v.Size(12))
	})

	t.Run("non positive sizes are ignored", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 250, 800)
		v.Measure(3, 0)
		v.Measure(3, -12)
		assert.Equal(t, 250, v.Size(3))
		assert.Equal(t, PhaseIdle, v.Phase())
	})

	t.Run("out of range measurements are ignored", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 250, 800)
		assert.NotPanics(t, func() {
			v.Measure(10, 100)
			v.Measure(-1, 100)
		})
		assert.Equal(t, 10*250, v.TotalSize())
	})
}

func TestVirtualizerPhase(t *testing.T) {
	t.Parallel()

	v := newTestVirtualizer(100, 100, 400)
	assert.Equal(t, PhaseIdle, v.Phase())

	v.SetScrollOffset(1000)
	assert.Equal(t, PhaseScrolling, v.Phase())

	v.Quiesce()
	assert.Equal(t, PhaseIdle, v.Phase())

	v.Measure(10, 180)
	assert.Equal(t, PhaseMeasuring, v.Phase())

	// Re-reporting an unchanged size is not activity.
	v.Quiesce()
	v.Measure(10, 180)
	assert.Equal(t, PhaseIdle, v.Phase())
}

func TestVirtualizerScrollToIndex(t *testing.T) {
	t.Parallel()

	t.Run("align start lands the item at the window top", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(1000, 250, 800)

		target := v.ScrollToIndex(999, AlignStart)

		assert.Equal(t, 999*250, target)
		assert.Equal(t, target, v.ScrollOffset())

		items := v.Items()
		last := items[len(items)-1]
		assert.Equal(t, 999, last.Index)
		assert.Equal(t, target, last.Start)
	})

	t.Run("align center", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(1000, 100, 800)
		target := v.ScrollToIndex(500, AlignCenter)
		assert.Equal(t, 500*100+50-400, target)
	})

	t.Run("align end", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(1000, 100, 800)
		target := v.ScrollToIndex(500, AlignEnd)
		assert.Equal(t, 501*100-800, target)
	})

	t.Run("align auto keeps a visible item in place", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(1000, 100, 800)
		v.SetScrollOffset(5000)
		target := v.ScrollToIndex(53, AlignAuto)
		assert.Equal(t, 5000, target)
	})

	t.Run("align auto scrolls minimally toward an item below", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(1000, 100, 800)
		v.SetScrollOffset(0)
		target := v.ScrollToIndex(20, AlignAuto)
		assert.Equal(t, 21*100-800, target)
	})

	t.Run("align auto scrolls minimally toward an item above", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(1000, 100, 800)
		v.SetScrollOffset(5000)
		target := v.ScrollToIndex(10, AlignAuto)
		assert.Equal(t, 1000, target)
	})

	t.Run("target never goes negative", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(1000, 100, 800)
		assert.Equal(t, 0, v.ScrollToIndex(0, AlignCenter))
	})

	t.Run("out of range index panics", func(t *testing.T) {
		t.Parallel()
		v := newTestVirtualizer(10, 100, 800)
		assert.Panics(t, func() { v.ScrollToIndex(10, AlignStart) })
		assert.Panics(t, func() { v.ScrollToIndex(-1, AlignStart) })
	})
}

func TestVirtualizerSetCount(t *testing.T) {
	t.Parallel()

	itemKey := func(prefix string) func(int) string {
		return func(i int) string { return fmt.Sprintf("%s-%d", prefix, i) }
	}

	t.Run("measurements survive unchanged keys", func(t *testing.T) {
		t.Parallel()
		v := New(Config{Count: 10, EstimateSize: constEstimate(100), KeyOf: itemKey("a")})
		v.Measure(4, 300)

		v.SetCount(20, itemKey("a"))

		assert.Equal(t, 300, v.Size(4))
		assert.Equal(t, 19*100+300, v.TotalSize())
	})

	t.Run("measurements reset where keys changed", func(t *testing.T) {
		t.Parallel()
		v := New(Config{Count: 10, EstimateSize: constEstimate(100), KeyOf: itemKey("a")})
		v.Measure(4, 300)

		v.SetCount(10, itemKey("b"))

		assert.Equal(t, 100, v.Size(4))
		assert.Equal(t, 1000, v.TotalSize())
	})

	t.Run("shrinking drops tail measurements", func(t *testing.T) {
		t.Parallel()
		v := New(Config{Count: 10, EstimateSize: constEstimate(100), KeyOf: strconv.Itoa})
		v.Measure(9, 500)
		v.SetCount(5, strconv.Itoa)
		assert.Equal(t, 500, v.TotalSize())
		assert.Panics(t, func() { v.Size(9) })
	})
}
