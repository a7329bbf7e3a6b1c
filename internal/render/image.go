package render

import (
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Thumbnail scales src to fit a size x size transparent square, keeping the
// aspect ratio and centering the result.
func Thumbnail(src image.Image, size int) *image.RGBA {
	if size < 1 {
		size = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	b := src.Bounds()
	if b.Empty() {
		return dst
	}

	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(size*b.Dy()/b.Dx(), 1)
	} else if b.Dy() > b.Dx() {
		w = max(size*b.Dx()/b.Dy(), 1)
	}
	offset := image.Pt((size-w)/2, (size-h)/2)
	target := image.Rectangle{Min: offset, Max: offset.Add(image.Pt(w, h))}
	draw.CatmullRom.Scale(dst, target, src, b, draw.Over, nil)
	return dst
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}
