package main

import (
	"image"

	"github.com/lixenwraith/cellpaint/paint"
	"github.com/lixenwraith/cellpaint/picture"
	"github.com/lixenwraith/cellpaint/terminal"
)

// Gradient end points for the built-in test pattern
var (
	gradientFrom = terminal.RGB{R: 255, G: 96, B: 64}
	gradientTo   = terminal.RGB{R: 64, G: 128, B: 255}
)

// hueStep is the gradient rotation per animated frame, in degrees
const hueStep = 12.0

// scene holds what one frame is built from
type scene struct {
	img     image.Image // nil draws the gradient
	caption *picture.Caption
	width   int // requested columns; 0 fits the terminal

	cols, rows int // terminal size

	scaled     *picture.Bitmap
	scaledCols int
}

// fitColumns returns the picture width in columns for the current terminal,
// leaving the last row free for the cursor
func (s *scene) fitColumns() int {
	cols := s.cols
	if s.width > 0 && s.width < cols {
		cols = s.width
	}
	return max(cols, 1)
}

// bitmap returns the picture for frame n, clipped to the terminal
func (s *scene) bitmap(n int) *picture.Bitmap {
	maxRows := max(s.rows-1, 1)

	cols := s.fitColumns()
	if s.img != nil {
		// Rescale only when the column count changes
		if s.scaled == nil || s.scaledCols != cols {
			s.scaled = picture.FromImage(s.img, cols)
			s.scaledCols = cols
		}
		return clip(s.scaled, cols, maxRows)
	}

	shift := float64(n) * hueStep
	from := picture.HueShift(gradientFrom, shift)
	to := picture.HueShift(gradientTo, shift)
	return picture.Gradient(cols, maxRows*2, from, to)
}

// build lays out frame n and returns its cells and the cursor position below it
func (s *scene) build(n int) ([]paint.Cell, paint.Point) {
	b := s.bitmap(n)
	var captions []picture.Caption
	if s.caption != nil && s.caption.Text != "" {
		captions = append(captions, *s.caption)
	}
	cells := picture.Frame(b, paint.Point{}, captions...)
	cursor := paint.Point{X: 0, Y: min(b.Rows(), max(s.rows-1, 0))}
	return cells, cursor
}

// resize records a new terminal size
func (s *scene) resize(cols, rows int) {
	s.cols, s.rows = cols, rows
}

// clip returns b cropped to cols x rows cells, or b itself when it already fits
func clip(b *picture.Bitmap, cols, rows int) *picture.Bitmap {
	if b.Width <= cols && b.Rows() <= rows {
		return b
	}
	w, h := min(b.Width, cols), min(b.Height, rows*2)
	out := picture.NewBitmap(w, h)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, b.At(x, y))
		}
	}
	return out
}
