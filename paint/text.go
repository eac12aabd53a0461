package paint

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/cellpaint/terminal"
)

// Underlay returns the pixel pair beneath a grid position
type Underlay func(p Point) (top, bottom terminal.RGB)

// TextCells lays text out left to right from origin, one owning cell per
// grapheme cluster followed by a continuation cell for each extra column.
// under supplies the pixels the text is blended over; nil means black.
func TextCells(origin Point, text string, ink terminal.RGB, under Underlay) []Cell {
	cells := make([]Cell, 0, len(text))
	pos := origin

	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		width := clusterWidth(cluster, gr.Runes())
		if width == 0 {
			// Combining marks with no base, control characters
			continue
		}

		for i := 0; i < width; i++ {
			at := pos.Add(i, 0)
			c := Cell{
				Position: at,
				Grapheme: &Grapheme{
					Text:  cluster,
					Index: i,
					Width: width,
					Color: ink,
				},
			}
			if under != nil {
				c.Top, c.Bottom = under(at)
			}
			cells = append(cells, c)
		}
		pos = pos.Add(width, 0)
	}
	return cells
}

// clusterWidth measures a grapheme cluster in grid columns, clamped to 0..2
func clusterWidth(cluster string, runes []rune) int {
	if len(runes) == 0 || (len(runes) == 1 && runes[0] < 0x20) {
		return 0
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	if w > 2 {
		w = 2
	}
	return w
}
