package picture

import (
	"github.com/lixenwraith/cellpaint/paint"
	"github.com/lixenwraith/cellpaint/terminal"
)

// Caption is text drawn over a bitmap, At is relative to the bitmap origin
type Caption struct {
	Text string
	At   paint.Point
	Ink  terminal.RGB
}

// Frame lays out one frame of cells, row-major, for a bitmap placed at origin.
// Caption glyphs replace the pixel cells they cover and blend over them.
// Glyphs are placed whole: one starting off the left edge or crossing the
// right edge is dropped, and a later caption overlapping any column of an
// earlier glyph removes all of it.
func Frame(b *Bitmap, origin paint.Point, captions ...Caption) []paint.Cell {
	cols, rows := b.Width, b.Rows()
	if cols == 0 || rows == 0 {
		return nil
	}

	var text []paint.Cell
	if len(captions) > 0 {
		text = make([]paint.Cell, cols*rows)
		under := func(p paint.Point) (terminal.RGB, terminal.RGB) {
			return b.Pair(paint.Point{X: p.X - origin.X, Y: p.Y - origin.Y})
		}
		for _, c := range captions {
			start := origin.Add(c.At.X, c.At.Y)
			placed := false
			for _, tc := range paint.TextCells(start, c.Text, c.Ink, under) {
				x, y := tc.Position.X-origin.X, tc.Position.Y-origin.Y
				g := tc.Grapheme
				if g.Index > 0 {
					// Continuations follow their owner in or out
					if placed {
						text[y*cols+x] = tc
					}
					continue
				}
				placed = y >= 0 && y < rows && x >= 0 && x+g.Width <= cols
				if !placed {
					continue
				}
				row := text[y*cols : (y+1)*cols]
				for i := x; i < x+g.Width; i++ {
					clearGlyph(row, i)
				}
				row[x] = tc
			}
		}
	}

	cells := make([]paint.Cell, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if text != nil && text[y*cols+x].Grapheme != nil {
				cells = append(cells, text[y*cols+x])
				continue
			}
			top, bottom := b.Pair(paint.Point{X: x, Y: y})
			cells = append(cells, paint.Cell{
				Position: origin.Add(x, y),
				Top:      top,
				Bottom:   bottom,
			})
		}
	}
	return cells
}

// clearGlyph removes the whole glyph covering column x of row, if any
func clearGlyph(row []paint.Cell, x int) {
	g := row[x].Grapheme
	if g == nil {
		return
	}
	owner := x - g.Index
	for i := owner; i < owner+g.Width && i < len(row); i++ {
		if i >= 0 {
			row[i] = paint.Cell{}
		}
	}
}
