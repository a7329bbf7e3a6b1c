package render

import (
	"errors"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	errMissingHash = errors.New("color must start with #")
	errBadLength   = errors.New("color must be #RGB, #RGBA, #RRGGBB or #RRGGBBAA")
	errNonHexDigit = errors.New("color contains a non-hex digit")
)

// ParseColor parses a hex color string. Only #hex forms are accepted; color
// names such as "black" are rejected. Surrounding whitespace is trimmed and
// alpha defaults to opaque.
func ParseColor(raw string) (color.NRGBA, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, errMissingHash
	}
	digits := s[1:]
	for _, r := range digits {
		if !isHexDigit(r) {
			return color.NRGBA{}, errNonHexDigit
		}
	}

	var rgb, alpha string
	switch len(digits) {
	case 3, 6:
		rgb = s
	case 4:
		rgb, alpha = s[:4], strings.Repeat(digits[3:], 2)
	case 8:
		rgb, alpha = s[:7], digits[6:]
	default:
		return color.NRGBA{}, errBadLength
	}

	c, err := colorful.Hex(rgb)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	out := color.NRGBA{R: r, G: g, B: b, A: 0xff}
	if alpha != "" {
		a, err := strconv.ParseUint(alpha, 16, 8)
		if err != nil {
			return color.NRGBA{}, err
		}
		out.A = uint8(a)
	}
	return out, nil
}

// ParsePalette parses every entry, failing on the first bad one.
func ParsePalette(entries []string) ([]color.NRGBA, error) {
	if len(entries) == 0 {
		return nil, ErrInvalidPalette
	}
	out := make([]color.NRGBA, len(entries))
	for i, entry := range entries {
		c, err := ParseColor(entry)
		if err != nil {
			return nil, &ColorError{Index: i, Value: entry, Cause: err}
		}
		out[i] = c
	}
	return out, nil
}

// Hex formats c as #RRGGBB, ignoring alpha.
func Hex(c color.NRGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
