// @focus: #render { paint, ansi }
// Package paint converts cell grids into a minimal ANSI byte stream.
//
// The Painter remembers what it last emitted (render mode, cursor, colors) and
// only writes the escape sequences needed to move the terminal from that state
// to the one each cell asks for. Color and mode state survive between frames;
// cursor prediction does not.
package paint

import (
	"bufio"
	"io"

	"github.com/lixenwraith/cellpaint/terminal"
)

// Output is a byte device with buffered write and flush
type Output interface {
	io.Writer
	Flush() error
}

const outputBufferSize = 131072 // 128KB

// channel tracks one color channel at two levels: the raw color last seen and
// the palette index last emitted
type channel struct {
	color      terminal.RGB
	colorValid bool
	index      uint8
	indexValid bool
}

// Painter is a stateful encoder from cells to escape sequences.
// One frame (Begin ... End) at a time; not safe for concurrent use.
type Painter struct {
	out       Output
	dev       io.Writer     // device under out when the painter wrapped it
	owned     *bufio.Writer // wrapper created by New, reset by Invalidate
	buf       []byte
	trueColor bool

	mode mode

	cursor      Point
	cursorValid bool

	bg channel
	fg channel
}

// New creates a painter writing frames to w
// colorMode overrides COLORTERM detection when given
func New(w io.Writer, colorMode ...terminal.ColorMode) *Painter {
	var owned *bufio.Writer
	out, ok := w.(Output)
	if !ok {
		owned = bufio.NewWriterSize(w, outputBufferSize)
		out = owned
	}

	c := terminal.DetectColorMode()
	if len(colorMode) > 0 {
		c = colorMode[0]
	}

	return &Painter{
		out:       out,
		dev:       w,
		owned:     owned,
		buf:       make([]byte, 0, 4096),
		trueColor: c == terminal.ColorModeTrueColor,
		mode:      modeText,
	}
}

// TrueColor reports whether colors are emitted as 24-bit RGB
func (p *Painter) TrueColor() bool {
	return p.trueColor
}

// SetTrueColor switches between 24-bit and palette output.
// A change forgets emitted colors, since indices were not tracked while the other mode was active.
func (p *Painter) SetTrueColor(trueColor bool) {
	if p.trueColor == trueColor {
		return
	}
	p.trueColor = trueColor
	p.bg = channel{}
	p.fg = channel{}
}

// Buffered returns the number of bytes accumulated for the current frame
func (p *Painter) Buffered() int {
	return len(p.buf)
}

// Invalidate forgets all emitted state so the next frame re-emits mode, cursor
// and both colors. Call after a failed End; the pending buffer is dropped.
// A write buffer created by New is reset, clearing its sticky error.
func (p *Painter) Invalidate() {
	if p.owned != nil {
		p.owned.Reset(p.dev)
	}
	p.mode = modeUnknown
	p.cursorValid = false
	p.bg = channel{}
	p.fg = channel{}
	p.buf = p.buf[:0]
}

// Begin starts a frame: hide the cursor and stop it blinking
func (p *Painter) Begin() {
	p.buf = append(p.buf, terminal.CursorHide...)
	p.buf = append(p.buf, terminal.CursorBlinkOff...)
}

// Paint appends the bytes needed to draw c.
// Continuation cells are inert: no output and no state change.
func (p *Painter) Paint(c Cell) {
	r, ok := c.resolve()
	if !ok {
		return
	}

	var toggle []byte
	if r.mode != p.mode {
		if r.mode == modeBitmap {
			toggle = terminal.BitmapModeOn
		} else {
			toggle = terminal.BitmapModeOff
		}
		p.mode = r.mode
	}

	if !p.cursorValid || p.cursor != c.Position {
		p.buf = terminal.AppendCursorPos(p.buf, c.Position.X, c.Position.Y)
	}
	// Terminal auto-advances past the glyph
	p.cursor = c.Position.Add(r.width, 0)
	p.cursorValid = true

	if !p.bg.colorValid || p.bg.color != r.bg {
		p.bg.color, p.bg.colorValid = r.bg, true
		if p.trueColor {
			p.buf = terminal.AppendBgRGB(p.buf, r.bg)
		} else if idx := terminal.RGBTo256(r.bg); !p.bg.indexValid || p.bg.index != idx {
			p.bg.index, p.bg.indexValid = idx, true
			p.buf = terminal.AppendBg256(p.buf, idx)
		}
	}

	if !p.fg.colorValid || p.fg.color != r.fg {
		p.fg.color, p.fg.colorValid = r.fg, true
		if p.trueColor {
			p.buf = terminal.AppendFgRGB(p.buf, r.fg)
		} else if idx := terminal.RGBTo256(r.fg); !p.fg.indexValid || p.fg.index != idx {
			p.fg.index, p.fg.indexValid = idx, true
			p.buf = terminal.AppendFg256(p.buf, idx)
		}
	}

	if toggle != nil {
		p.buf = append(p.buf, toggle...)
	}
	p.buf = append(p.buf, r.text...)
}

// End writes the frame in one write and flushes the device.
// With a cursor, the cursor is then moved there, shown and set blinking.
// Cursor prediction is reset; color and mode state carry into the next frame.
func (p *Painter) End(cursor ...Point) error {
	p.cursorValid = false

	if _, err := p.out.Write(p.buf); err != nil {
		return &OutputError{Op: "write", Err: err}
	}
	p.buf = p.buf[:0]

	if len(cursor) > 0 {
		c := cursor[0]
		var tail [32]byte
		seq := terminal.AppendCursorPos(tail[:0], c.X, c.Y)
		seq = append(seq, terminal.CursorShow...)
		seq = append(seq, terminal.CursorBlinkOn...)
		if _, err := p.out.Write(seq); err != nil {
			return &OutputError{Op: "cursor", Err: err}
		}
	}

	if err := p.out.Flush(); err != nil {
		return &OutputError{Op: "flush", Err: err}
	}
	return nil
}
