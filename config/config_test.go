package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg := Load(t.TempDir())
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "list", cfg.View)
	assert.Equal(t, 1, cfg.Gap)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := Config{
		Theme:      "catppuccin",
		BackendURL: "http://localhost:9000",
		View:       "grid",
		Gap:        2,
		Columns:    3,
	}
	require.NoError(t, Save(dir, in))

	assert.Equal(t, in, Load(dir))
}

func TestSaveCreatesProfileDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "profile")
	require.NoError(t, Save(dir, Config{Theme: "light"}))

	_, err := os.Stat(filepath.Join(dir, "catalog-tui.json"))
	assert.NoError(t, err)
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog-tui.json"), []byte("{nope"), 0o644))

	assert.Equal(t, "dark", Load(dir).Theme)
}
