package virt

// List binds a Virtualizer to a flat item sequence, index for index,
// with a uniform gap between consecutive items. Positions, totals and
// resolved windows all live in rendered (gapped) coordinates, so the
// scroll offsets a host feeds back are always in the same space the
// core searches.
type List struct {
	*Virtualizer
	gap int
}

// NewList builds a list layout over cfg with a uniform gap between
// consecutive items. A gap set on cfg directly is overridden.
func NewList(cfg Config, gap int) *List {
	if gap < 0 {
		gap = 0
	}
	cfg.Gap = gap
	return &List{Virtualizer: New(cfg), gap: gap}
}

// Gap returns the configured inter-item gap.
func (l *List) Gap() int { return l.gap }
