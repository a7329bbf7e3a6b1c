// Package pattern holds the fixed cell grids that the renderer draws.
package pattern

// FilledMarker marks a cell that is part of the drawn shape.
const FilledMarker = 'X'

// Pattern is an ordered list of rows; each byte of a row is one cell.
//
// Rows may differ in length. Cells beyond the end of a row are empty and the
// grid is as wide as its longest row.
type Pattern []string

// Heart is the heart silhouette shown by every surface.
var Heart = Pattern{
	"    XXX   XXX    ",
	"  XXXXXX XXXXXX  ",
	" XXXXXXXXXXXXXXX ",
	" XXXXXXXXXXXXXXX ",
	" XXXXXXXXXXXXXXX ",
	"  XXXXXXXXXXXXX  ",
	"   XXXXXXXXXXX   ",
	"    XXXXXXXXX    ",
	"     XXXXXXX     ",
	"       XXX       ",
	"        X        ",
}

// Rows returns the number of rows.
func (p Pattern) Rows() int { return len(p) }

// Cols returns the length of the longest row.
func (p Pattern) Cols() int {
	cols := 0
	for _, row := range p {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// Filled reports whether the cell at row, col is part of the shape.
// Out-of-range coordinates are empty.
func (p Pattern) Filled(row, col int) bool {
	if row < 0 || row >= len(p) || col < 0 || col >= len(p[row]) {
		return false
	}
	return p[row][col] == FilledMarker
}

// FilledCount returns the number of filled cells.
func (p Pattern) FilledCount() int {
	n := 0
	for r, row := range p {
		for c := range row {
			if p.Filled(r, c) {
				n++
			}
		}
	}
	return n
}
