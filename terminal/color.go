package terminal

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the config spelling of the mode
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// ErrInvalidColor is returned by ParseColor for unrecognized input
var ErrInvalidColor = errors.New("invalid color")

// Average returns the component-wise arithmetic mean of c and other, truncated
func (c RGB) Average(other RGB) RGB {
	return RGB{
		R: uint8((uint16(c.R) + uint16(other.R)) / 2),
		G: uint8((uint16(c.G) + uint16(other.G)) / 2),
		B: uint8((uint16(c.B) + uint16(other.B)) / 2),
	}
}

// Average blends two stacked pixel colors into one
func Average(a, b RGB) RGB {
	return a.Average(b)
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

// rgb256LUT is a full lookup table for RGB → 256-color index
// 256 * 256 * 256 = 16MB, built on first quantization
// Access: rgb256LUT[r][g][b]
var (
	rgb256LUT  *[256][256][256]uint8
	rgb256Once sync.Once
)

func init() {
	// Build cube index lookup (which cube level is nearest for each 0-255 value)
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func buildRGB256LUT() {
	lut := new([256][256][256]uint8)
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				lut[r][g][b] = computeRGB256(uint8(r), uint8(g), uint8(b))
			}
		}
	}
	rgb256LUT = lut
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// computeRGB256 finds the nearest 256-color palette index for an RGB value
func computeRGB256(r, g, b uint8) uint8 {
	// Grayscale ramp only competes when r ≈ g ≈ b
	// Ramp: 232-255 maps to luminance 8, 18, 28, ..., 238
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))

	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		step := (gray - 8) / 10
		if step < 0 {
			step = 0
		}
		if step > 23 {
			step = 23
		}
		grayIdx := uint8(grayscaleStart + step)

		// Compare grayscale match vs color cube match
		grayLevel := 8 + step*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)

		cubeR := cubeIndex[r]
		cubeG := cubeIndex[g]
		cubeB := cubeIndex[b]
		cubeDist := abs(int(r)-int(cubeValues[cubeR])) +
			abs(int(g)-int(cubeValues[cubeG])) +
			abs(int(b)-int(cubeValues[cubeB]))

		if grayDist < cubeDist {
			return grayIdx
		}
	}

	return 16 + 36*cubeIndex[r] + 6*cubeIndex[g] + cubeIndex[b]
}

// RGBTo256 converts RGB to nearest 256-color palette index
// O(1) lookup via pre-computed table
func RGBTo256(c RGB) uint8 {
	rgb256Once.Do(buildRGB256LUT)
	return rgb256LUT[c.R][c.G][c.B]
}

// ParseColor resolves "#rrggbb" hex or a color name ("salmon", "navy")
func ParseColor(s string) (RGB, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(name, "#") {
		if len(name) != 7 && len(name) != 4 {
			return RGB{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
		}
		c, err := colorful.Hex(name)
		if err != nil {
			return RGB{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
		}
		r, g, b := c.RGB255()
		return RGB{r, g, b}, nil
	}

	tc, ok := tcell.ColorNames[name]
	if !ok {
		return RGB{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	r, g, b := tc.RGB()
	if r < 0 {
		return RGB{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	return RGB{uint8(r), uint8(g), uint8(b)}, nil
}
