// Package render turns a cell pattern and a palette into an image by giving
// every filled cell an independently chosen palette color.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"golang.org/x/image/draw"

	"heart-of-colors/internal/pattern"
)

const (
	DefaultCellSize = 30
	DefaultGap      = 3
	borderWidth     = 1

	// MaxCanvasPixels bounds width*height of a rendered image.
	MaxCanvasPixels = 1 << 26
)

var borderColor = color.NRGBA{A: 0xff}

// Options controls cell geometry in pixels.
type Options struct {
	CellSize int
	Gap      int
}

// DefaultOptions returns 30px cells with a 3px gap.
func DefaultOptions() Options {
	return Options{CellSize: DefaultCellSize, Gap: DefaultGap}
}

// Validate checks that CellSize is positive and Gap is not negative.
func (o Options) Validate() error {
	if o.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %d must be positive", ErrInvalidDimension, o.CellSize)
	}
	if o.Gap < 0 {
		return fmt.Errorf("%w: gap %d must not be negative", ErrInvalidDimension, o.Gap)
	}
	return nil
}

// Size returns the image size for grid under these options.
func (o Options) Size(grid pattern.Pattern) image.Point {
	pitch := o.CellSize + o.Gap
	return image.Pt(grid.Cols()*pitch, grid.Rows()*pitch)
}

// Source picks a uniformly distributed index in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewSeededSource returns a deterministic Source.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Render draws grid with colors from palette on a transparent canvas.
//
// Every filled cell becomes a CellSize square with a 1px black border and an
// interior color drawn from palette with replacement, so neighbours may
// repeat. Empty cells stay transparent. A nil src uses the global generator.
func Render(grid pattern.Pattern, palette []string, opts Options, src Source) (*image.RGBA, error) {
	colors, err := prepare(grid, palette, opts)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = globalSource{}
	}

	size := opts.Size(grid)
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			if !grid.Filled(row, col) {
				continue
			}
			fill := colors[src.IntN(len(colors))]
			drawCell(img, CellBounds(opts, row, col), fill)
		}
	}
	return img, nil
}

// CellBounds returns the pixel rectangle of the cell at row, col.
func CellBounds(opts Options, row, col int) image.Rectangle {
	pitch := opts.CellSize + opts.Gap
	origin := image.Pt(col*pitch, row*pitch)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(opts.CellSize, opts.CellSize))}
}

func prepare(grid pattern.Pattern, palette []string, opts Options) ([]color.NRGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkCanvas(grid, opts); err != nil {
		return nil, err
	}
	return ParsePalette(palette)
}

// checkCanvas rejects geometry whose pitch overflows int or whose image
// would exceed MaxCanvasPixels. opts must already be valid.
func checkCanvas(grid pattern.Pattern, opts Options) error {
	pitch := opts.CellSize + opts.Gap
	if pitch < opts.CellSize {
		return fmt.Errorf("%w: cell size %d plus gap %d overflows", ErrInvalidDimension, opts.CellSize, opts.Gap)
	}
	cols, rows := grid.Cols(), grid.Rows()
	if cols == 0 || rows == 0 {
		return nil
	}
	if pitch > MaxCanvasPixels/cols || pitch > MaxCanvasPixels/rows {
		return fmt.Errorf("%w: canvas exceeds %d pixels", ErrInvalidDimension, MaxCanvasPixels)
	}
	if width, height := cols*pitch, rows*pitch; width > MaxCanvasPixels/height {
		return fmt.Errorf("%w: canvas %dx%d exceeds %d pixels", ErrInvalidDimension, width, height, MaxCanvasPixels)
	}
	return nil
}

func drawCell(dst draw.Image, cell image.Rectangle, fill color.NRGBA) {
	draw.Draw(dst, cell, image.NewUniform(borderColor), image.Point{}, draw.Src)
	inner := cell.Inset(borderWidth)
	if inner.Empty() {
		return
	}
	draw.Draw(dst, inner, image.NewUniform(fill), image.Point{}, draw.Src)
}
