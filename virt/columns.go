package virt

// ColumnLayout is the grid shape resolved for a viewport width: how
// many columns to pack and the baseline height to assume for an
// unmeasured row.
type ColumnLayout struct {
	Columns     int
	RowEstimate int
}

// Width tiers for ResolveColumns, in terminal cells.
var columnTiers = []struct {
	maxWidth int
	layout   ColumnLayout
}{
	{60, ColumnLayout{Columns: 1, RowEstimate: 6}},
	{90, ColumnLayout{Columns: 2, RowEstimate: 7}},
	{120, ColumnLayout{Columns: 3, RowEstimate: 7}},
	{150, ColumnLayout{Columns: 4, RowEstimate: 8}},
}

// widest applies beyond the last tier.
var widestLayout = ColumnLayout{Columns: 4, RowEstimate: 8}

// ResolveColumns maps a viewport width to a column layout using a fixed
// five-tier breakpoint table. Pure; call it on every resize.
func ResolveColumns(width int) ColumnLayout {
	for _, t := range columnTiers {
		if width < t.maxWidth {
			return t.layout
		}
	}
	return widestLayout
}
