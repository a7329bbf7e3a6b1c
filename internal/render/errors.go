package render

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPalette is returned when a palette has no colors to choose from.
	ErrInvalidPalette = errors.New("palette must contain at least one color")
	// ErrInvalidColor is matched by every *ColorError.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidDimension is returned for a non-positive cell size or a negative gap.
	ErrInvalidDimension = errors.New("invalid cell dimension")
)

// ColorError reports a palette entry that could not be parsed.
type ColorError struct {
	Index int
	Value string
	Cause error
}

func (e *ColorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid color %q at palette index %d: %v", e.Value, e.Index, e.Cause)
	}
	return fmt.Sprintf("invalid color %q at palette index %d", e.Value, e.Index)
}

func (e *ColorError) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrInvalidColor) match.
func (e *ColorError) Is(target error) bool { return target == ErrInvalidColor }

// Kind names the error class for logs, metrics and API codes.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidPalette):
		return "invalid_palette"
	case errors.Is(err, ErrInvalidColor):
		return "invalid_color"
	case errors.Is(err, ErrInvalidDimension):
		return "invalid_dimension"
	default:
		return "internal"
	}
}
