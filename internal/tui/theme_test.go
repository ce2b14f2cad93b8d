package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTheme_PersistedWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme")
	require.NoError(t, os.WriteFile(path, []byte("dark\n"), 0o644))

	theme := LoadTheme(path, func() bool { return false })
	assert.Equal(t, ModeDark, theme.Mode())
}

func TestLoadTheme_FallsBackToDetection(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, ModeDark, LoadTheme(filepath.Join(dir, "missing"), func() bool { return true }).Mode())
	assert.Equal(t, ModeLight, LoadTheme(filepath.Join(dir, "missing"), func() bool { return false }).Mode())
	assert.Equal(t, ModeLight, LoadTheme("", nil).Mode())

	garbage := filepath.Join(dir, "garbage")
	require.NoError(t, os.WriteFile(garbage, []byte("purple"), 0o644))
	assert.Equal(t, ModeDark, LoadTheme(garbage, func() bool { return true }).Mode())
}

func TestTheme_TogglePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "theme")
	theme := LoadTheme(path, nil)

	mode, err := theme.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ModeDark, mode)
	assert.True(t, theme.IsDark())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dark\n", string(data))

	assert.Equal(t, ModeDark, LoadTheme(path, nil).Mode())

	mode, err = theme.Toggle()
	require.NoError(t, err)
	assert.Equal(t, ModeLight, mode)
}

func TestTheme_Palette(t *testing.T) {
	theme := NewTheme(ModeLight)
	assert.Equal(t, LightPalette(), theme.Palette())

	_, err := theme.Toggle()
	require.NoError(t, err)
	assert.Equal(t, DarkPalette(), theme.Styles().Palette)
}

func TestIcons(t *testing.T) {
	for _, icon := range []Icon{IconUsers, IconMessage, IconChart, IconTrending, IconPipeline, IconWarning} {
		assert.NotEmpty(t, icon.Glyph(), icon.String())
	}
	assert.Equal(t, "trending", IconTrending.String())
	assert.Panics(t, func() { _ = Icon(99).Glyph() })
}
