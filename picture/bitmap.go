// Package picture turns images into half-block bitmap cells for the painter.
// Each text row carries two pixel rows: the upper pixel becomes the cell
// background, the lower one the foreground of a lower half block.
package picture

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"

	"github.com/lixenwraith/cellpaint/paint"
	"github.com/lixenwraith/cellpaint/terminal"
)

// Bitmap is a row-major RGB pixel grid with an even height
type Bitmap struct {
	Width  int
	Height int
	Pix    []terminal.RGB
}

// NewBitmap allocates a black bitmap, rounding height up to even
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	height += height & 1
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]terminal.RGB, width*height),
	}
}

// At returns the pixel at (x, y); out of bounds reads black
func (b *Bitmap) At(x, y int) terminal.RGB {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return terminal.RGBBlack
	}
	return b.Pix[y*b.Width+x]
}

// Set writes the pixel at (x, y); out of bounds writes are dropped
func (b *Bitmap) Set(x, y int, c terminal.RGB) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = c
}

// Rows returns the number of text rows the bitmap spans
func (b *Bitmap) Rows() int {
	return b.Height / 2
}

// Pair returns the upper and lower pixel of the cell at p, relative to the bitmap
func (b *Bitmap) Pair(p paint.Point) (top, bottom terminal.RGB) {
	return b.At(p.X, p.Y*2), b.At(p.X, p.Y*2+1)
}

// OutputSize computes the pixel size for an image scaled to columns wide.
// Half blocks make pixels roughly square, so height keeps the source aspect ratio.
func OutputSize(srcW, srcH, columns int) (w, h int) {
	if srcW <= 0 || srcH <= 0 || columns <= 0 {
		return 0, 0
	}
	w = columns
	h = int(float64(columns) * float64(srcH) / float64(srcW))
	if h < 2 {
		h = 2
	}
	h += h & 1
	return w, h
}

// FromImage scales img to columns wide and samples it into a bitmap.
// Transparent regions composite over black.
func FromImage(img image.Image, columns int) *Bitmap {
	bounds := img.Bounds()
	w, h := OutputSize(bounds.Dx(), bounds.Dy(), columns)
	b := NewBitmap(w, h)
	if w == 0 {
		return b
	}

	scaled := resize.Resize(uint(w), uint(h), img, resize.Lanczos3)
	sb := scaled.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, colorToRGB(scaled.At(sb.Min.X+x, sb.Min.Y+y)))
		}
	}
	return b
}

// colorToRGB converts alpha-premultiplied color to RGB over black
func colorToRGB(c color.Color) terminal.RGB {
	r, g, b, _ := c.RGBA()
	return terminal.RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}
