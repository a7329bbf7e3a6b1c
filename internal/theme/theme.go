package theme

import (
	"errors"
	"fmt"
)

// Palette is an ordered list of color strings such as "#00A5CF".
//
// Entries are not validated here; the renderer parses them when drawing.
type Palette []string

// Theme is a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// Cursor indexes the registry. The zero value selects the first theme.
type Cursor int

var (
	// ErrUnknownTheme is returned when a requested theme name is not registered.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrCursorOutOfRange is returned when a cursor does not index a theme.
	ErrCursorOutOfRange = errors.New("theme cursor out of range")
	// ErrEmptyRegistry is returned when a registry is built without themes.
	ErrEmptyRegistry = errors.New("theme registry must contain at least one theme")
	// ErrDuplicateTheme is returned when two themes share a name.
	ErrDuplicateTheme = errors.New("duplicate theme name")
)

var defaultThemes = [...]Theme{
	{Name: "Sommer am Mittelmeer", Palette: Palette{"#00A5CF", "#0077B6", "#90E0EF", "#CAF0F8", "#F5F5DC"}},
	{Name: "Lichtenberg", Palette: Palette{"#C78B3D", "#9A3E2A", "#A4B6C5", "#E5E4E2", "#36454F"}},
	{Name: "Hochgebirge im Winter", Palette: Palette{"#FFFFFF", "#E0E1DD", "#A2A392", "#6D6A75", "#2B2A2F"}},
	{Name: "Farben des Abendhimmels", Palette: Palette{"#001F54", "#40E0D0", "#FFBF00", "#FF6F61", "#FF7F50"}},
	{Name: "Kladow", Palette: Palette{"#C5D664", "#F8F47E", "#53A78D", "#234984", "#79D3F1"}},
	{Name: "Afrikanische Savanne", Palette: Palette{"#A68A64", "#7F5539", "#B08968", "#DDBEA9", "#E6CCB2"}},
	{Name: "Prenzlberg", Palette: Palette{"#FDB813", "#2E7D32", "#B85C38", "#9EADBD", "#495057"}},
	{Name: "Tropischer Regenwald", Palette: Palette{"#004B23", "#006400", "#38B000", "#FFC300", "#C70039"}},
	{Name: "Kirschblüte in Teltow", Palette: Palette{"#F7A8B8", "#6EB5FF", "#78B446", "#6B4F43", "#C3A984"}},
	{Name: "Tokyo bei Nacht", Palette: Palette{"#F94144", "#F3722C", "#F9C74F", "#43AA8B", "#277DA1", "#080708"}},
}

var defaultRegistry = mustRegistry(defaultThemes[:]...)

// Registry is an immutable, ordered set of themes. Order defines cursor
// traversal.
type Registry struct {
	themes []Theme
	byName map[string]int
}

// NewRegistry builds a registry from themes in traversal order.
func NewRegistry(themes ...Theme) (*Registry, error) {
	if len(themes) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		themes: make([]Theme, 0, len(themes)),
		byName: make(map[string]int, len(themes)),
	}
	for _, t := range themes {
		if _, exists := r.byName[t.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTheme, t.Name)
		}
		r.byName[t.Name] = len(r.themes)
		r.themes = append(r.themes, Theme{Name: t.Name, Palette: clonePalette(t.Palette)})
	}
	return r, nil
}

// Default returns the built-in registry.
func Default() *Registry { return defaultRegistry }

// Len returns the number of themes.
func (r *Registry) Len() int { return len(r.themes) }

// Names returns theme names in traversal order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.themes))
	for i, t := range r.themes {
		out[i] = t.Name
	}
	return out
}

// Palette returns a copy of the named theme's palette.
func (r *Registry) Palette(name string) (Palette, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return clonePalette(r.themes[i].Palette), nil
}

// Index returns the traversal position of the named theme.
func (r *Registry) Index(name string) (Cursor, error) {
	i, ok := r.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return Cursor(i), nil
}

// At returns the theme the cursor points at.
func (r *Registry) At(c Cursor) (Theme, error) {
	if !r.Valid(c) {
		return Theme{}, fmt.Errorf("%w: %d not in [0,%d)", ErrCursorOutOfRange, int(c), len(r.themes))
	}
	t := r.themes[c]
	return Theme{Name: t.Name, Palette: clonePalette(t.Palette)}, nil
}

// Valid reports whether c indexes a theme.
func (r *Registry) Valid(c Cursor) bool {
	return c >= 0 && int(c) < len(r.themes)
}

// Advance returns (c + 1) mod Len. A cursor that is out of range (for example
// one restored from a stale session) restarts at the first theme.
func (r *Registry) Advance(c Cursor) Cursor {
	if !r.Valid(c) {
		return 0
	}
	return Cursor((int(c) + 1) % len(r.themes))
}

func clonePalette(in Palette) Palette {
	if in == nil {
		return nil
	}
	out := make(Palette, len(in))
	copy(out, in)
	return out
}

func mustRegistry(themes ...Theme) *Registry {
	r, err := NewRegistry(themes...)
	if err != nil {
		panic(err)
	}
	return r
}
