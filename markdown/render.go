package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderWidth converts an entry's markdown body to styled ANSI output
// wrapped at width. Falls back to the raw text if rendering fails.
func RenderWidth(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour adds trailing newlines; trim for inline display.
	return strings.TrimRight(out, "\n")
}
