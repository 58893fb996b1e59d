package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/catalogd/catalog-tui/msg"
	"github.com/catalogd/catalog-tui/style"
)

// RenderCard renders one catalog entry as a bordered card of the given
// outer width. Height varies with the summary and tag content; the
// browse view measures the result and feeds it back to the windowing
// engine.
func RenderCard(it msg.Item, width int, selected bool) string {
	inner := width - 4 // border + padding
	if inner < 8 {
		inner = 8
	}

	title := style.CardTitle.Render(truncate(it.Name, inner))
	if it.Rating > 0 {
		rating := style.CardRating.Render(fmt.Sprintf(" %.1f★", it.Rating))
		if lipgloss.Width(title)+lipgloss.Width(rating) <= inner {
			title += rating
		}
	}

	var lines []string
	lines = append(lines, title)
	if it.Summary != "" {
		summary := style.CardSummary.Width(inner).Render(it.Summary)
		lines = append(lines, summary)
	}
	meta := cardMeta(it, inner)
	if meta != "" {
		lines = append(lines, meta)
	}

	body := strings.Join(lines, "\n")
	border := style.CardBorder
	if selected {
		border = style.CardSelected
	}
	return border.Width(width - 2).Render(body)
}

// RenderPadCell fills a trailing grid slot so the row keeps its column
// rhythm without suggesting a real entry.
func RenderPadCell(width, height int) string {
	if height < 1 {
		height = 1
	}
	blank := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = blank
	}
	return style.CardPad.Render(strings.Join(rows, "\n"))
}

func cardMeta(it msg.Item, width int) string {
	var parts []string
	if it.Category != "" {
		parts = append(parts, style.CardCategory.Render(it.Category))
	}
	if len(it.Tags) > 0 {
		parts = append(parts, style.Faint.Render(truncate(strings.Join(it.Tags, ", "), width/2)))
	}
	if len(parts) == 0 {
		return ""
	}
	return truncateANSI(strings.Join(parts, style.Faint.Render(" · ")), width)
}

func truncate(s string, max int) string {
	if max < 1 || len([]rune(s)) <= max {
		return s
	}
	r := []rune(s)
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

// truncateANSI caps a styled string by display width, dropping it to the
// plain text when it would overflow.
func truncateANSI(s string, max int) string {
	if lipgloss.Width(s) <= max {
		return s
	}
	return truncate(stripToWidth(s), max)
}

func stripToWidth(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEsc = false
			}
		case r == '\x1b':
			inEsc = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
