package theme

import (
	"errors"
	"testing"
)

func TestDefaultOrder(t *testing.T) {
	t.Parallel()

	want := []string{
		"Sommer am Mittelmeer",
		"Lichtenberg",
		"Hochgebirge im Winter",
		"Farben des Abendhimmels",
		"Kladow",
		"Afrikanische Savanne",
		"Prenzlberg",
		"Tropischer Regenwald",
		"Kirschblüte in Teltow",
		"Tokyo bei Nacht",
	}
	got := Default().Names()
	if len(got) != len(want) {
		t.Fatalf("Names() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPaletteSnapshots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want Palette
	}{
		{name: "Lichtenberg", want: Palette{"#C78B3D", "#9A3E2A", "#A4B6C5", "#E5E4E2", "#36454F"}},
		{name: "Tokyo bei Nacht", want: Palette{"#F94144", "#F3722C", "#F9C74F", "#43AA8B", "#277DA1", "#080708"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Default().Palette(tt.name)
			if err != nil {
				t.Fatalf("Palette() unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("palette length = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("palette[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPaletteImmutability(t *testing.T) {
	t.Parallel()

	first, err := Default().Palette("Kladow")
	if err != nil {
		t.Fatalf("Palette() unexpected error: %v", err)
	}
	first[0] = "#000000"

	second, err := Default().Palette("Kladow")
	if err != nil {
		t.Fatalf("Palette() unexpected error: %v", err)
	}
	if second[0] != "#C5D664" {
		t.Fatalf("expected immutable palette, got %q", second[0])
	}

	current, err := Default().At(4)
	if err != nil {
		t.Fatalf("At() unexpected error: %v", err)
	}
	current.Palette[1] = "#000000"
	again, _ := Default().At(4)
	if again.Palette[1] != "#F8F47E" {
		t.Fatalf("At() leaked palette storage, got %q", again.Palette[1])
	}
}

func TestPaletteUnknownTheme(t *testing.T) {
	t.Parallel()

	if _, err := Default().Palette("Atlantis"); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := Default().Index("Atlantis"); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme from Index, got %v", err)
	}
}

func TestAdvanceWrapsAfterFullCycle(t *testing.T) {
	t.Parallel()

	r := Default()
	var c Cursor
	for i := 0; i < r.Len(); i++ {
		next := r.Advance(c)
		if int(next) != (int(c)+1)%r.Len() {
			t.Fatalf("Advance(%d) = %d", c, next)
		}
		c = next
	}
	if c != 0 {
		t.Fatalf("cursor after %d advances = %d, want 0", r.Len(), c)
	}
}

func TestAdvanceResetsInvalidCursor(t *testing.T) {
	t.Parallel()

	r := Default()
	for _, c := range []Cursor{-1, Cursor(r.Len()), 99} {
		if got := r.Advance(c); got != 0 {
			t.Fatalf("Advance(%d) = %d, want 0", c, got)
		}
	}
}

func TestAtOutOfRange(t *testing.T) {
	t.Parallel()

	r := Default()
	for _, c := range []Cursor{-1, Cursor(r.Len())} {
		if _, err := r.At(c); !errors.Is(err, ErrCursorOutOfRange) {
			t.Fatalf("At(%d) expected ErrCursorOutOfRange, got %v", c, err)
		}
	}
}

func TestIndexMatchesOrder(t *testing.T) {
	t.Parallel()

	r := Default()
	for i, name := range r.Names() {
		got, err := r.Index(name)
		if err != nil {
			t.Fatalf("Index(%q) unexpected error: %v", name, err)
		}
		if int(got) != i {
			t.Fatalf("Index(%q) = %d, want %d", name, got, i)
		}
	}
}

func TestNewRegistryValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistry(); !errors.Is(err, ErrEmptyRegistry) {
		t.Fatalf("expected ErrEmptyRegistry, got %v", err)
	}

	_, err := NewRegistry(
		Theme{Name: "a", Palette: Palette{"#FFFFFF"}},
		Theme{Name: "a", Palette: Palette{"#000000"}},
	)
	if !errors.Is(err, ErrDuplicateTheme) {
		t.Fatalf("expected ErrDuplicateTheme, got %v", err)
	}
}

func TestNewRegistryDefersColorValidation(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry(Theme{Name: "broken", Palette: Palette{"not-a-color"}}, Theme{Name: "empty"})
	if err != nil {
		t.Fatalf("NewRegistry() unexpected error: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}
