package model

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogd/catalog-tui/msg"
)

func makeItems(n int) []msg.Item {
	items := make([]msg.Item, n)
	for i := range items {
		items[i] = msg.Item{
			ID:      fmt.Sprintf("item-%d", i),
			Name:    fmt.Sprintf("Entry %d", i),
			Summary: "A short description of the entry.",
		}
	}
	return items
}

func newTestBrowse(n int) BrowseModel {
	m := NewBrowse(ViewList, 1, 0)
	m.SetSize(80, 24)
	m.SetItems(makeItems(n))
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowseEmptyState(t *testing.T) {
	t.Parallel()

	m := NewBrowse(ViewList, 1, 0)
	m.SetSize(80, 24)
	m.SetItems(nil)

	view := m.View()
	assert.Contains(t, view, "No items in the catalog")

	// Navigation on an empty catalog is inert, never a panic.
	assert.NotPanics(t, func() {
		m, _ = m.Update(keyMsg("down"))
		m, _ = m.Update(keyMsg("enter"))
	})
}

func TestBrowseViewIsBounded(t *testing.T) {
	t.Parallel()

	m := newTestBrowse(10000)
	view := m.View()
	assert.Len(t, strings.Split(view, "\n"), 24)

	// The first entry is in the initial window, the ten-thousandth is not.
	assert.Contains(t, view, "Entry 0")
	assert.NotContains(t, view, "Entry 9999")
}

func TestBrowseSelectionScrolls(t *testing.T) {
	t.Parallel()

	m := newTestBrowse(100)
	for i := 0; i < 30; i++ {
		m, _ = m.Update(keyMsg("down"))
	}
	it, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "item-30", it.ID)

	// The selection stays inside the rendered window.
	assert.Contains(t, m.View(), "Entry 30")
}

func TestBrowseJump(t *testing.T) {
	t.Parallel()

	t.Run("jump lands the target at the top", func(t *testing.T) {
		t.Parallel()
		m := newTestBrowse(5000)
		m, _ = m.JumpTo(4200, false)

		it, ok := m.Selected()
		require.True(t, ok)
		assert.Equal(t, "item-4200", it.ID)
		assert.Contains(t, m.View(), "Entry 4200")
	})

	t.Run("out of range requests are clamped", func(t *testing.T) {
		t.Parallel()
		m := newTestBrowse(100)
		assert.NotPanics(t, func() {
			m, _ = m.JumpTo(5000, false)
			m, _ = m.JumpTo(-3, false)
		})
	})

	t.Run("smooth jump animates toward the target", func(t *testing.T) {
		t.Parallel()
		m := newTestBrowse(5000)
		start := m.ScrollInfo().Offset

		m, cmd := m.JumpTo(2500, true)
		require.NotNil(t, cmd)

		// The offset has not teleported; frames move it stepwise.
		assert.Equal(t, start, m.ScrollInfo().Offset)
		m, _ = m.Update(msg.ScrollStep{Seq: m.scrollSeq})
		assert.Greater(t, m.ScrollInfo().Offset, start)
	})
}

func TestBrowseOpenDetail(t *testing.T) {
	t.Parallel()

	m := newTestBrowse(10)
	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	opened, ok := cmd().(msg.OpenDetail)
	require.True(t, ok)
	assert.Equal(t, "item-0", opened.ID)
}

func TestBrowseGridMode(t *testing.T) {
	t.Parallel()

	m := NewBrowse(ViewGrid, 1, 0)
	m.SetSize(120, 30) // resolves to four columns
	m.SetItems(makeItems(10))

	view := m.View()
	assert.Len(t, strings.Split(view, "\n"), 30)
	assert.Contains(t, view, "Entry 0")

	// Right moves one cell, down moves a full row.
	m, _ = m.Update(keyMsg("right"))
	it, _ := m.Selected()
	assert.Equal(t, "item-1", it.ID)

	m, _ = m.Update(keyMsg("down"))
	it, _ = m.Selected()
	assert.Equal(t, "item-5", it.ID)
}

func TestBrowseModeToggleKeepsSelection(t *testing.T) {
	t.Parallel()

	m := newTestBrowse(200)
	for i := 0; i < 7; i++ {
		m, _ = m.Update(keyMsg("down"))
	}
	m.SetMode(ViewGrid)

	it, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "item-7", it.ID)
}

func TestBrowseScrollInfo(t *testing.T) {
	t.Parallel()

	m := newTestBrowse(10000)
	info := m.ScrollInfo()
	assert.Equal(t, 0, info.Offset)
	assert.Positive(t, info.Total)
	assert.Equal(t, 0, info.Lo)
	assert.Greater(t, info.Hi, info.Lo)
	assert.Less(t, info.Hi, 100, "window must stay narrow for a huge catalog")
}

func TestBrowseItemReplacement(t *testing.T) {
	t.Parallel()

	m := newTestBrowse(50)
	items := makeItems(50)
	items[3].Summary = "Rewritten summary text."
	m.SetItems(items)
	m.InvalidateItem("item-3")

	assert.Contains(t, m.View(), "Rewritten summary")
}
