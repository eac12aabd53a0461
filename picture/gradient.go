package picture

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cellpaint/terminal"
)

// Gradient builds a test pattern: an HCL blend from -> to left to right,
// fading toward black top to bottom
func Gradient(width, height int, from, to terminal.RGB) *Bitmap {
	b := NewBitmap(width, height)
	if b.Width == 0 || b.Height == 0 {
		return b
	}

	c1 := toColorful(from)
	c2 := toColorful(to)
	black := colorful.Color{}

	for x := 0; x < b.Width; x++ {
		t := 0.0
		if b.Width > 1 {
			t = float64(x) / float64(b.Width-1)
		}
		col := c1.BlendHcl(c2, t).Clamped()

		for y := 0; y < b.Height; y++ {
			fade := 0.0
			if b.Height > 1 {
				fade = 0.75 * float64(y) / float64(b.Height-1)
			}
			b.Set(x, y, fromColorful(col.BlendRgb(black, fade)))
		}
	}
	return b
}

// HueShift rotates c around the HCL hue wheel by degrees
func HueShift(c terminal.RGB, degrees float64) terminal.RGB {
	h, cr, l := toColorful(c).Hcl()
	h += degrees
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return fromColorful(colorful.Hcl(h, cr, l).Clamped())
}

func toColorful(c terminal.RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) terminal.RGB {
	r, g, b := c.RGB255()
	return terminal.RGB{R: r, G: g, B: b}
}
