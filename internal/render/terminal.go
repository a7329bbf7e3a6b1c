package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"heart-of-colors/internal/pattern"
)

const terminalCell = "  "

// Terminal draws grid as text, two columns per cell, with filled cells
// painted in a palette background color chosen the same way Render chooses
// them. A nil renderer uses lipgloss' default renderer.
func Terminal(grid pattern.Pattern, palette []string, r *lipgloss.Renderer, src Source) (string, error) {
	colors, err := ParsePalette(palette)
	if err != nil {
		return "", err
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if src == nil {
		src = globalSource{}
	}

	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		styles[i] = r.NewStyle().Background(lipgloss.Color(Hex(c)))
	}

	var b strings.Builder
	for row := 0; row < grid.Rows(); row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < grid.Cols(); col++ {
			if !grid.Filled(row, col) {
				b.WriteString(terminalCell)
				continue
			}
			b.WriteString(styles[src.IntN(len(styles))].Render(terminalCell))
		}
	}
	return b.String(), nil
}
