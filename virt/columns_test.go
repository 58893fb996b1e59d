package virt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumns(t *testing.T) {
	t.Parallel()

	cases := []struct {
		width   int
		columns int
	}{
		{0, 1},
		{40, 1},
		{59, 1},
		{60, 2},
		{89, 2},
		{90, 3},
		{119, 3},
		{120, 4},
		{149, 4},
		{150, 4},
		{400, 4},
	}
	for _, tc := range cases {
		layout := ResolveColumns(tc.width)
		assert.Equal(t, tc.columns, layout.Columns, "width %d", tc.width)
		assert.Positive(t, layout.RowEstimate, "width %d", tc.width)
	}
}

func TestResolveColumnsMonotonic(t *testing.T) {
	t.Parallel()

	prev := 0
	for w := 0; w <= 300; w++ {
		c := ResolveColumns(w).Columns
		assert.GreaterOrEqual(t, c, prev, "columns must not shrink as width grows (width %d)", w)
		prev = c
	}
}
