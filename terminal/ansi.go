// @focus: #terminal { ansi }
package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during paint)
var (
	csi = []byte("\x1b[")

	// Cursor control
	CursorHide     = []byte("\x1b[?25l")
	CursorShow     = []byte("\x1b[?25h")
	CursorBlinkOff = []byte("\x1b[?12l")
	CursorBlinkOn  = []byte("\x1b[?12h")

	// Bitmap mode marker: bold+underline pair toggled as a two-state flag
	BitmapModeOn  = []byte("\x1b[1m\x1b[4m")
	BitmapModeOff = []byte("\x1b[22m\x1b[24m")

	// Color prefixes
	csiFg256 = []byte("\x1b[38;5;") // followed by N m
	csiBg256 = []byte("\x1b[48;5;") // followed by N m
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B m
	csiBgRGB = []byte("\x1b[48;2;") // followed by R;G;B m

	csiSGR0 = []byte("\x1b[0m")
)

// LowerHalfBlock is the glyph painted for every bitmap cell
const LowerHalfBlock = "▄"

// appendInt appends a non-negative decimal integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func appendInt(buf []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(buf, byte(n)+'0')
	}
	if n < 100 {
		return append(buf, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(buf, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	// Fallback for >999 (rare)
	var tmp [20]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(buf, tmp[i:]...)
}

// AppendCursorPos appends an absolute cursor positioning sequence (0-indexed input)
func AppendCursorPos(buf []byte, x, y int) []byte {
	buf = append(buf, csi...)
	buf = appendInt(buf, y+1)
	buf = append(buf, ';')
	buf = appendInt(buf, x+1)
	return append(buf, 'H')
}

// AppendFgRGB appends a 24-bit foreground sequence
func AppendFgRGB(buf []byte, c RGB) []byte {
	return appendRGB(append(buf, csiFgRGB...), c)
}

// AppendBgRGB appends a 24-bit background sequence
func AppendBgRGB(buf []byte, c RGB) []byte {
	return appendRGB(append(buf, csiBgRGB...), c)
}

// AppendFg256 appends a palette-indexed foreground sequence
func AppendFg256(buf []byte, index uint8) []byte {
	buf = appendInt(append(buf, csiFg256...), int(index))
	return append(buf, 'm')
}

// AppendBg256 appends a palette-indexed background sequence
func AppendBg256(buf []byte, index uint8) []byte {
	buf = appendInt(append(buf, csiBg256...), int(index))
	return append(buf, 'm')
}

func appendRGB(buf []byte, c RGB) []byte {
	buf = appendInt(buf, int(c.R))
	buf = append(buf, ';')
	buf = appendInt(buf, int(c.G))
	buf = append(buf, ';')
	buf = appendInt(buf, int(c.B))
	return append(buf, 'm')
}
