// Package virt implements windowed rendering for large collections: out
// of tens of thousands of items only the slice near the viewport is ever
// materialized. One core tracks per-index sizes and scroll state; thin
// adapters bind it to a flat list or a responsive grid of packed rows.
package virt

import (
	"fmt"
	"strconv"
)

// DefaultEstimate is the per-item size assumed before measurement when
// no estimator is configured.
const DefaultEstimate = 250

// DefaultOverscan is the number of extra items materialized on each side
// of the visible range for list layouts.
const DefaultOverscan = 5

// Align controls where a target index lands in the viewport after
// ScrollToIndex.
type Align int

const (
	// AlignStart puts the item's start at the top of the viewport.
	AlignStart Align = iota
	// AlignCenter centers the item in the viewport.
	AlignCenter
	// AlignEnd puts the item's end at the bottom of the viewport.
	AlignEnd
	// AlignAuto scrolls the minimum distance needed to bring the item
	// fully into view, or not at all if it already is.
	AlignAuto
)

// Phase describes what the virtualizer last reacted to. It exists so
// hosts can debounce expensive render work; Items is always consistent
// with the latest scroll offset regardless of phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScrolling
	PhaseMeasuring
)

// VirtualItem is one materialized entry of the visible window. Callers
// read it for a single render pass and must not retain it.
type VirtualItem struct {
	Index int
	Key   string
	Start int
	Size  int
}

// Config configures a Virtualizer.
type Config struct {
	// Count is the number of virtualized entries.
	Count int
	// EstimateSize returns the assumed size of an unmeasured index.
	// Defaults to a constant DefaultEstimate.
	EstimateSize func(index int) int
	// KeyOf returns a stable identity for an index. Defaults to the
	// decimal index.
	KeyOf func(index int) string
	// Overscan is the number of extra entries materialized on each side
	// of the visible range. Defaults to DefaultOverscan.
	Overscan int
	// Gap is a uniform rendered distance between consecutive entries.
	// All offsets, positions and totals are in gapped coordinates.
	Gap int
}

// Virtualizer maps a scroll offset and viewport extent to the bounded
// set of entries that must exist, correcting its size assumptions as
// measurements arrive. Each instance owns its own measurement cache;
// nothing is shared between instances.
type Virtualizer struct {
	sizes    *sizeModel
	keys     []string
	overscan int
	estimate func(int) int

	offset int
	extent int
	phase  Phase
}

// New builds a Virtualizer from cfg, applying defaults for any zero
// fields.
func New(cfg Config) *Virtualizer {
	if cfg.EstimateSize == nil {
		cfg.EstimateSize = func(int) int { return DefaultEstimate }
	}
	if cfg.KeyOf == nil {
		cfg.KeyOf = strconv.Itoa
	}
	if cfg.Overscan <= 0 {
		cfg.Overscan = DefaultOverscan
	}
	if cfg.Gap < 0 {
		cfg.Gap = 0
	}
	v := &Virtualizer{
		sizes:    newSizeModel(cfg.Count, cfg.Gap, cfg.EstimateSize),
		keys:     snapshotKeys(cfg.Count, cfg.KeyOf),
		overscan: cfg.Overscan,
		estimate: cfg.EstimateSize,
	}
	return v
}

func snapshotKeys(count int, keyOf func(int) string) []string {
	keys := make([]string, count)
	for i := range keys {
		keys[i] = keyOf(i)
	}
	return keys
}

// Count returns the number of virtualized entries.
func (v *Virtualizer) Count() int { return v.sizes.count }

// Phase reports the last activity; see Quiesce.
func (v *Virtualizer) Phase() Phase { return v.phase }

// Quiesce returns the virtualizer to the idle phase. Call it once
// scroll or measurement activity has settled.
func (v *Virtualizer) Quiesce() { v.phase = PhaseIdle }

// ScrollOffset returns the last observed scroll offset.
func (v *Virtualizer) ScrollOffset() int { return v.offset }

// SetScrollOffset records a new scroll offset. Negative offsets are
// clamped to zero; this path never fails.
func (v *Virtualizer) SetScrollOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	v.offset = offset
	v.phase = PhaseScrolling
}

// SetViewport records the viewport extent along the scroll axis.
func (v *Virtualizer) SetViewport(extent int) {
	if extent < 0 {
		extent = 0
	}
	v.extent = extent
}

// Viewport returns the current viewport extent.
func (v *Virtualizer) Viewport() int { return v.extent }

// TotalSize returns the rendered extent of all entries, measured where
// known and estimated elsewhere, gaps included.
func (v *Virtualizer) TotalSize() int { return v.sizes.total() }

// Size returns the current size of index: measured if available, else
// its estimate. Gaps are between entries, never part of a size. Panics
// if index is out of range.
func (v *Virtualizer) Size(index int) int { return v.sizes.get(index) }

// Offset returns the rendered start of index, gaps included. Panics if
// index is out of range.
func (v *Virtualizer) Offset(index int) int {
	v.sizes.check(index)
	return v.sizes.position(index)
}

// Range returns the inclusive index range that Items would materialize
// for the current scroll state. Returns lo > hi when empty.
func (v *Virtualizer) Range() (lo, hi int) {
	return v.sizes.visibleRange(v.offset, v.extent, v.overscan)
}

// Items materializes the visible window plus overscan as VirtualItems,
// ordered by index. The result is valid for one render pass.
func (v *Virtualizer) Items() []VirtualItem {
	lo, hi := v.Range()
	if hi < lo {
		return nil
	}
	items := make([]VirtualItem, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		items = append(items, VirtualItem{
			Index: i,
			Key:   v.keys[i],
			Start: v.sizes.position(i),
			Size:  v.sizes.get(i),
		})
	}
	return items
}

// Measure records the real rendered size of index. Non-positive sizes
// are ignored, as are indices outside the collection: a measurement read
// from content that is gone must never disturb scroll handling, so the
// prior size is simply retained.
func (v *Virtualizer) Measure(index, size int) {
	if size <= 0 || index < 0 || index >= v.sizes.count {
		return
	}
	if v.sizes.get(index) == size {
		return
	}
	v.sizes.set(index, size)
	v.phase = PhaseMeasuring
}

// ScrollToIndex computes the offset that lands index in the viewport
// per align, records it as the current scroll offset, and returns it.
// Panics if index is out of range.
func (v *Virtualizer) ScrollToIndex(index int, align Align) int {
	if index < 0 || index >= v.sizes.count {
		panic(fmt.Sprintf("virt: scroll to index %d out of range [0,%d)", index, v.sizes.count))
	}
	target := v.alignTarget(v.sizes.position(index), v.sizes.get(index), align)
	v.offset = target
	v.phase = PhaseScrolling
	return target
}

// alignTarget computes the landing offset for an entry spanning
// [start, start+size) per align, against the current offset and extent.
func (v *Virtualizer) alignTarget(start, size int, align Align) int {
	var target int
	switch align {
	case AlignStart:
		target = start
	case AlignCenter:
		target = start + size/2 - v.extent/2
	case AlignEnd:
		target = start + size - v.extent
	case AlignAuto:
		target = v.offset
		if start < v.offset {
			target = start
		} else if start+size > v.offset+v.extent {
			target = start + size - v.extent
		}
	}
	if target < 0 {
		target = 0
	}
	return target
}

// SetCount replaces the collection with n entries identified by keyOf.
// Measured sizes survive for indices whose key is unchanged and are
// discarded for the rest; offsets are rebuilt lazily.
func (v *Virtualizer) SetCount(n int, keyOf func(index int) string) {
	if keyOf == nil {
		keyOf = strconv.Itoa
	}
	keys := snapshotKeys(n, keyOf)
	next := newSizeModel(n, v.sizes.gap, v.estimate)
	for i, s := range v.sizes.measured {
		if i < n && keys[i] == v.keys[i] {
			next.measured[i] = s
		}
	}
	v.sizes = next
	v.keys = keys
}
