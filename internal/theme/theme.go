// Package theme stores the light/dark preference and the terminal styles for each.
package theme

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/utils"
)

// Theme is the UI color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used when nothing valid is stored.
const Default = Light

// ErrInvalidTheme is returned by Parse for names other than light or dark.
var ErrInvalidTheme = errors.New("invalid theme")

// Parse parses a theme name, ignoring case and surrounding whitespace.
func Parse(input string) (Theme, error) {
	switch t := Theme(utils.NormalizeName(input)); t {
	case Light, Dark:
		return t, nil
	}
	return "", fmt.Errorf("%w %q, must be light or dark", ErrInvalidTheme, input)
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Load reads the stored theme. Missing, unreadable, or unknown values yield Default.
func Load(ctx context.Context, st storage.Storage) Theme {
	data, err := st.Get(ctx, storage.KeyTheme)
	if err != nil {
		return Default
	}
	return decode(data)
}

// decode accepts a JSON string ("dark") or a bare name (dark).
func decode(data []byte) Theme {
	data = bytes.TrimSpace(data)
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		name = string(data)
	}
	t, err := Parse(name)
	if err != nil {
		return Default
	}
	return t
}

// Save stores t under the theme key.
func Save(ctx context.Context, st storage.Storage, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	data, err := json.Marshal(string(t))
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	if err := st.Set(ctx, storage.KeyTheme, data); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips the stored theme and returns the new one.
func Toggle(ctx context.Context, st storage.Storage) (Theme, error) {
	next := Load(ctx, st).Toggled()
	if err := Save(ctx, st, next); err != nil {
		return Load(ctx, st), err
	}
	return next, nil
}

// Palette holds the styles the TUI renders with.
type Palette struct {
	Title          lipgloss.Style
	Clock          lipgloss.Style
	Text           lipgloss.Style
	Muted          lipgloss.Style
	Selected       lipgloss.Style
	Pending        lipgloss.Style
	Completed      lipgloss.Style
	FilterActive   lipgloss.Style
	FilterInactive lipgloss.Style
	Danger         lipgloss.Style
	Success        lipgloss.Style
	Modal          lipgloss.Style
	Error          lipgloss.Style
}

type colors struct {
	text, muted, accent, surface, pending, completed, danger lipgloss.Color
}

var schemes = map[Theme]colors{
	Light: {
		text:      lipgloss.Color("#111827"),
		muted:     lipgloss.Color("#6B7280"),
		accent:    lipgloss.Color("#2563EB"),
		surface:   lipgloss.Color("#E5E7EB"),
		pending:   lipgloss.Color("#B45309"),
		completed: lipgloss.Color("#15803D"),
		danger:    lipgloss.Color("#B91C1C"),
	},
	Dark: {
		text:      lipgloss.Color("#F3F4F6"),
		muted:     lipgloss.Color("#9CA3AF"),
		accent:    lipgloss.Color("#60A5FA"),
		surface:   lipgloss.Color("#374151"),
		pending:   lipgloss.Color("#FBBF24"),
		completed: lipgloss.Color("#4ADE80"),
		danger:    lipgloss.Color("#F87171"),
	},
}

// PaletteFor returns the styles for t; unknown themes get the Default palette.
func PaletteFor(t Theme) Palette {
	c, ok := schemes[t]
	if !ok {
		c = schemes[Default]
	}
	return Palette{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(c.accent),
		Clock:          lipgloss.NewStyle().Bold(true).Foreground(c.text),
		Text:           lipgloss.NewStyle().Foreground(c.text),
		Muted:          lipgloss.NewStyle().Foreground(c.muted),
		Selected:       lipgloss.NewStyle().Bold(true).Foreground(c.accent),
		Pending:        lipgloss.NewStyle().Foreground(c.pending),
		Completed:      lipgloss.NewStyle().Foreground(c.completed),
		FilterActive:   lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(c.text).Background(c.accent),
		FilterInactive: lipgloss.NewStyle().Padding(0, 1).Foreground(c.muted).Background(c.surface),
		Danger:         lipgloss.NewStyle().Bold(true).Foreground(c.danger),
		Success:        lipgloss.NewStyle().Bold(true).Foreground(c.completed),
		Modal:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c.accent).Padding(1, 2),
		Error:          lipgloss.NewStyle().Foreground(c.danger),
	}
}
