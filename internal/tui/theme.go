package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.TrimSpace(s)) {
	case ModeLight:
		return ModeLight, true
	case ModeDark:
		return ModeDark, true
	}
	return "", false
}

// Palette is the color set for one mode
type Palette struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	Chart      [4]lipgloss.Color
}

func LightPalette() Palette {
	return Palette{
		Foreground: lipgloss.Color("#111827"),
		Primary:    lipgloss.Color("#1d4ed8"),
		Accent:     lipgloss.Color("#7c3aed"),
		Muted:      lipgloss.Color("#6b7280"),
		Border:     lipgloss.Color("#d1d5db"),
		Card:       lipgloss.Color("#ffffff"),
		Success:    lipgloss.Color("#15803d"),
		Warning:    lipgloss.Color("#b45309"),
		Danger:     lipgloss.Color("#b91c1c"),
		Chart: [4]lipgloss.Color{
			lipgloss.Color("#2563eb"),
			lipgloss.Color("#0d9488"),
			lipgloss.Color("#d97706"),
			lipgloss.Color("#db2777"),
		},
	}
}

func DarkPalette() Palette {
	return Palette{
		Foreground: lipgloss.Color("#f3f4f6"),
		Primary:    lipgloss.Color("#60a5fa"),
		Accent:     lipgloss.Color("#a78bfa"),
		Muted:      lipgloss.Color("#9ca3af"),
		Border:     lipgloss.Color("#374151"),
		Card:       lipgloss.Color("#1f2937"),
		Success:    lipgloss.Color("#4ade80"),
		Warning:    lipgloss.Color("#fbbf24"),
		Danger:     lipgloss.Color("#f87171"),
		Chart: [4]lipgloss.Color{
			lipgloss.Color("#60a5fa"),
			lipgloss.Color("#2dd4bf"),
			lipgloss.Color("#fbbf24"),
			lipgloss.Color("#f472b6"),
		},
	}
}

// Theme is the process-wide light/dark preference. It is created once by the
// entrypoint and handed to every view that renders.
type Theme struct {
	mutex sync.RWMutex
	mode  Mode
	// empty disables persistence
	path string
}

// LoadTheme reads the persisted preference from path. A missing or unreadable
// file falls back to detectDark, which is usually lipgloss.HasDarkBackground.
func LoadTheme(path string, detectDark func() bool) *Theme {
	t := &Theme{mode: ModeLight, path: path}

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if mode, ok := ParseMode(string(data)); ok {
				t.mode = mode
				return t
			}
		}
	}

	if detectDark != nil && detectDark() {
		t.mode = ModeDark
	}
	return t
}

// NewTheme returns an unpersisted theme fixed to mode.
func NewTheme(mode Mode) *Theme {
	return &Theme{mode: mode}
}

func (t *Theme) Mode() Mode {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.mode
}

func (t *Theme) IsDark() bool {
	return t.Mode() == ModeDark
}

// Toggle flips the mode and persists it. The new mode is kept even when the
// write fails.
func (t *Theme) Toggle() (Mode, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.mode == ModeDark {
		t.mode = ModeLight
	} else {
		t.mode = ModeDark
	}

	if t.path == "" {
		return t.mode, nil
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return t.mode, fmt.Errorf("failed to create theme directory: %w", err)
	}
	if err := os.WriteFile(t.path, []byte(string(t.mode)+"\n"), 0o644); err != nil {
		return t.mode, fmt.Errorf("failed to persist theme: %w", err)
	}
	return t.mode, nil
}

func (t *Theme) Palette() Palette {
	if t.IsDark() {
		return DarkPalette()
	}
	return LightPalette()
}

// Styles holds the rendered styles for the current mode
type Styles struct {
	Palette Palette

	Header lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Bold   lipgloss.Style
	Error  lipgloss.Style
	Warn   lipgloss.Style

	Card      lipgloss.Style
	CardValue lipgloss.Style
	Column    lipgloss.Style
	Selected  lipgloss.Style
	Help      lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Palette: p,

		Header: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			MarginBottom(1),

		Body: lipgloss.NewStyle().
			Foreground(p.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(p.Danger).
			Bold(true),

		Warn: lipgloss.NewStyle().
			Foreground(p.Warning),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 2).
			Width(24),

		CardValue: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Column: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Padding(0, 1).
			Width(22),

		Selected: lipgloss.NewStyle().
			Foreground(p.Card).
			Background(p.Primary),

		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
	}
}

// Styles builds styles for the theme's current mode.
func (t *Theme) Styles() Styles {
	return NewStyles(t.Palette())
}
