package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests mutate package-level style state, so they run in one
// sequential test with a restore at the end.
func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })

	t.Run("repopulates colors and styles from the theme", func(t *testing.T) {
		SetTheme("catppuccin")

		want := Themes["catppuccin"]
		require.Equal(t, "catppuccin", CurrentThemeName)
		assert.Equal(t, want.Primary, Primary)
		assert.Equal(t, want.Error, Error)
		assert.Equal(t, want.Primary, BannerTitle.GetForeground())
		assert.Equal(t, want.Border, CardBorder.GetBorderTopForeground())
	})

	t.Run("unknown names are ignored", func(t *testing.T) {
		SetTheme("light")
		SetTheme("solarized")
		assert.Equal(t, "light", CurrentThemeName)
		assert.Equal(t, Themes["light"].Primary, Primary)
	})

	t.Run("every listed theme resolves", func(t *testing.T) {
		for _, name := range ThemeNames {
			_, ok := Themes[name]
			assert.True(t, ok, "theme %s missing from Themes", name)
		}
	})
}
