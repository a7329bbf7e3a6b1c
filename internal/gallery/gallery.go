// Package gallery is the event handler shared by every host surface: it
// takes the caller's cursor and one user action, and returns the new cursor
// together with the frame to display.
package gallery

import (
	"fmt"
	"image"

	"github.com/charmbracelet/lipgloss"

	"heart-of-colors/internal/pattern"
	"heart-of-colors/internal/render"
	"heart-of-colors/internal/theme"
)

// Event is one user action.
type Event int

const (
	// EventShow redraws the current theme without moving the cursor.
	EventShow Event = iota
	// EventNext advances the cursor by exactly one theme.
	EventNext
)

func (e Event) String() string {
	switch e {
	case EventShow:
		return "show"
	case EventNext:
		return "next"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Frame is what a host displays after handling an event.
type Frame struct {
	Theme string
	Index int
	Count int
	Image *image.RGBA
}

// Gallery binds a theme registry, a pattern and cell geometry.
type Gallery struct {
	themes *theme.Registry
	grid   pattern.Pattern
	opts   render.Options
}

// New returns a gallery. opts is validated on every render, not here.
func New(themes *theme.Registry, grid pattern.Pattern, opts render.Options) *Gallery {
	return &Gallery{themes: themes, grid: grid, opts: opts}
}

// Default returns the heart with the built-in themes and default geometry.
func Default() *Gallery {
	return New(theme.Default(), pattern.Heart, render.DefaultOptions())
}

func (g *Gallery) Themes() *theme.Registry  { return g.themes }
func (g *Gallery) Pattern() pattern.Pattern { return g.grid }
func (g *Gallery) Options() render.Options  { return g.opts }

// Apply returns the cursor that results from ev without rendering.
func (g *Gallery) Apply(c theme.Cursor, ev Event) theme.Cursor {
	switch ev {
	case EventNext:
		return g.themes.Advance(c)
	default:
		if !g.themes.Valid(c) {
			return 0
		}
		return c
	}
}

// Handle applies ev to c and renders the resulting theme. When rendering
// fails the new cursor is still returned so the event is not replayed.
func (g *Gallery) Handle(c theme.Cursor, ev Event, src render.Source) (theme.Cursor, Frame, error) {
	next := g.Apply(c, ev)
	frame, err := g.Frame(next, src)
	return next, frame, err
}

// Frame renders the theme at c.
func (g *Gallery) Frame(c theme.Cursor, src render.Source) (Frame, error) {
	current, err := g.themes.At(c)
	if err != nil {
		return Frame{}, err
	}
	img, err := render.Render(g.grid, current.Palette, g.opts, src)
	if err != nil {
		return Frame{}, fmt.Errorf("render theme %q: %w", current.Name, err)
	}
	return Frame{Theme: current.Name, Index: int(c), Count: g.themes.Len(), Image: img}, nil
}

// Text renders the theme at c for a terminal.
func (g *Gallery) Text(c theme.Cursor, r *lipgloss.Renderer, src render.Source) (string, theme.Theme, error) {
	current, err := g.themes.At(c)
	if err != nil {
		return "", theme.Theme{}, err
	}
	out, err := render.Terminal(g.grid, current.Palette, r, src)
	if err != nil {
		return "", current, fmt.Errorf("render theme %q: %w", current.Name, err)
	}
	return out, current, nil
}
