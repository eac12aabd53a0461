package paint

import "github.com/lixenwraith/cellpaint/terminal"

// Grapheme is a single glyph occupying one or more grid columns
type Grapheme struct {
	// Text is one grapheme cluster; may hold several code points
	Text string
	// Index is 0 on the owning column, >0 on each continuation column
	Index int
	// Width is the number of grid columns the glyph occupies (1 or 2)
	Width int
	// Color is the ink the glyph is drawn in
	Color terminal.RGB
}

// Cell is one grid position's rendering request for a single frame.
// A nil Grapheme makes the cell a bitmap pixel pair: Top is the upper pixel,
// Bottom the lower. With a Grapheme, Top and Bottom are the pixels under the glyph.
type Cell struct {
	Position Point
	Grapheme *Grapheme
	Top      terminal.RGB
	Bottom   terminal.RGB
}

// mode is the render mode a cell needs, tracked in the painter
type mode uint8

const (
	modeText mode = iota
	modeBitmap
	modeUnknown // after Invalidate; next cell's mode is always emitted
)

// resolved is the outcome of interpreting a Cell
type resolved struct {
	text  string
	width int
	bg    terminal.RGB
	fg    terminal.RGB
	mode  mode
}

// IsContinuation reports whether the cell only reserves a column of a wider glyph
func (c *Cell) IsContinuation() bool {
	return c.Grapheme != nil && c.Grapheme.Index > 0
}

// resolve interprets c; ok is false for continuation cells, which paint nothing
func (c *Cell) resolve() (r resolved, ok bool) {
	g := c.Grapheme
	if g == nil {
		return resolved{
			text:  terminal.LowerHalfBlock,
			width: 1,
			bg:    c.Top,
			fg:    c.Bottom,
			mode:  modeBitmap,
		}, true
	}
	if g.Index > 0 {
		return resolved{}, false
	}
	return resolved{
		text:  g.Text,
		width: g.Width,
		bg:    c.Top.Average(c.Bottom),
		fg:    g.Color,
		mode:  modeText,
	}, true
}
