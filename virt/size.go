package virt

import (
	"fmt"
	"sort"
)

// sizeModel tracks per-index sizes along the scroll axis. Each index
// starts at its estimate and is upgraded to a measured value once the
// rendered content reports its real extent. A cumulative offset table is
// kept alongside so range queries are binary searches; on a size change
// only the suffix from the changed index is recomputed.
//
// A uniform gap between consecutive entries is layered on top of the
// gap-free offset table: the rendered position of index i is
// offsets[i] + gap*i. Every public query (position, total, visible
// range) works in these rendered coordinates so scroll offsets and
// resolved windows always share one coordinate space.
type sizeModel struct {
	count    int
	gap      int
	estimate func(int) int
	measured map[int]int

	// offsets[i] is the gap-free start of index i; offsets[count] is
	// the gap-free total. Entries at or above dirty are stale.
	offsets []int
	dirty   int
}

func newSizeModel(count, gap int, estimate func(int) int) *sizeModel {
	return &sizeModel{
		count:    count,
		gap:      gap,
		estimate: estimate,
		measured: make(map[int]int),
		offsets:  make([]int, count+1),
		dirty:    0,
	}
}

// get returns the measured size for index if present, else its estimate.
func (m *sizeModel) get(index int) int {
	m.check(index)
	if s, ok := m.measured[index]; ok {
		return s
	}
	return m.estimate(index)
}

// set records a measured size and invalidates offsets after index.
func (m *sizeModel) set(index, size int) {
	m.check(index)
	if old, ok := m.measured[index]; ok && old == size {
		return
	}
	m.measured[index] = size
	if index+1 < m.dirty {
		m.dirty = index + 1
	}
}

// position returns the rendered start of index, gaps included. index ==
// count yields the position just past the last entry's trailing gap.
func (m *sizeModel) position(index int) int {
	if index < 0 || index > m.count {
		panic(fmt.Sprintf("virt: position index %d out of range [0,%d]", index, m.count))
	}
	m.ensure(index)
	return m.offsets[index] + m.gap*index
}

// total is the rendered extent of all entries: the sum of all sizes,
// measured or estimated, plus one gap per interior boundary.
func (m *sizeModel) total() int {
	if m.count == 0 {
		return 0
	}
	m.ensure(m.count)
	return m.offsets[m.count] + m.gap*(m.count-1)
}

// ensure recomputes stale offsets up to and including upTo.
func (m *sizeModel) ensure(upTo int) {
	if upTo < m.dirty {
		return
	}
	for i := m.dirty; i <= upTo; i++ {
		if i == 0 {
			m.offsets[0] = 0
			continue
		}
		m.offsets[i] = m.offsets[i-1] + m.get(i-1)
	}
	m.dirty = upTo + 1
}

// visibleRange resolves the index range intersecting the half-open
// window [scroll, scroll+extent) in rendered coordinates, widened by
// overscan on each side and clamped to valid indices. An item starting
// exactly at the window's end is excluded, as is one whose end sits
// exactly at the window's start. Returns lo > hi when the model is
// empty.
func (m *sizeModel) visibleRange(scroll, extent, overscan int) (lo, hi int) {
	if m.count == 0 {
		return 0, -1
	}
	if scroll < 0 {
		scroll = 0
	}
	m.ensure(m.count)
	// Item i spans [offsets[i]+gap*i, offsets[i+1]+gap*i); both
	// predicates stay monotonic with the gap folded in.
	lo = sort.Search(m.count, func(i int) bool {
		return m.offsets[i+1]+m.gap*i > scroll
	})
	hi = sort.Search(m.count, func(i int) bool {
		return m.offsets[i]+m.gap*i >= scroll+extent
	}) - 1
	lo -= overscan
	hi += overscan
	if lo < 0 {
		lo = 0
	}
	if hi > m.count-1 {
		hi = m.count - 1
	}
	if lo > m.count-1 {
		lo = m.count - 1
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (m *sizeModel) check(index int) {
	if index < 0 || index >= m.count {
		panic(fmt.Sprintf("virt: index %d out of range [0,%d)", index, m.count))
	}
}
