package picture

import (
	"image"
	"image/color"
	"testing"

	"github.com/lixenwraith/cellpaint/paint"
	"github.com/lixenwraith/cellpaint/terminal"
)

func near(a, b terminal.RGB, tol int) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= tol && d(a.G, b.G) <= tol && d(a.B, b.B) <= tol
}

func TestNewBitmapEvenHeight(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{4, 3, 4, 4},
		{4, 4, 4, 4},
		{0, 0, 0, 0},
		{-1, -2, 0, 0},
	}
	for _, tt := range tests {
		b := NewBitmap(tt.w, tt.h)
		if b.Width != tt.wantW || b.Height != tt.wantH || len(b.Pix) != tt.wantW*tt.wantH {
			t.Errorf("NewBitmap(%d, %d) = %dx%d (%d pix), want %dx%d",
				tt.w, tt.h, b.Width, b.Height, len(b.Pix), tt.wantW, tt.wantH)
		}
	}
}

func TestBitmapAccess(t *testing.T) {
	b := NewBitmap(2, 4)
	up := terminal.RGB{R: 10}
	down := terminal.RGB{G: 20}
	b.Set(1, 2, up)
	b.Set(1, 3, down)
	b.Set(5, 5, up) // dropped

	if got := b.At(1, 2); got != up {
		t.Errorf("At(1,2) = %v", got)
	}
	if got := b.At(-1, 0); got != terminal.RGBBlack {
		t.Errorf("out of bounds At = %v", got)
	}
	if b.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", b.Rows())
	}
	top, bottom := b.Pair(paint.Point{X: 1, Y: 1})
	if top != up || bottom != down {
		t.Errorf("Pair(1,1) = %v, %v", top, bottom)
	}
}

func TestOutputSize(t *testing.T) {
	tests := []struct {
		name             string
		srcW, srcH, cols int
		wantW, wantH     int
	}{
		{"Square", 100, 100, 40, 40, 40},
		{"Wide", 200, 100, 40, 40, 20},
		{"Odd height rounds up", 100, 50, 5, 5, 2},
		{"Very wide clamps to one row", 1000, 1, 10, 10, 2},
		{"Empty source", 0, 10, 10, 0, 0},
		{"No columns", 10, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := OutputSize(tt.srcW, tt.srcH, tt.cols)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("OutputSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFromImageUniform(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 32))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			src.SetRGBA(x, y, fill)
		}
	}

	b := FromImage(src, 16)
	if b.Width != 16 || b.Height != 8 {
		t.Fatalf("size = %dx%d, want 16x8", b.Width, b.Height)
	}
	want := terminal.RGB{R: 200, G: 100, B: 50}
	for i, px := range b.Pix {
		if !near(px, want, 1) {
			t.Fatalf("pixel %d = %v, want ~%v", i, px, want)
		}
	}
}

func TestFromImageTransparentIsBlack(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
		}
	}
	b := FromImage(src, 4)
	for i, px := range b.Pix {
		if px != terminal.RGBBlack {
			t.Fatalf("pixel %d = %v, want black", i, px)
		}
	}
}
