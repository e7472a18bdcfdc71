// Package framebuf holds the character grid and its differential emitter.
//
// A Buffer keeps two grids of identical shape. Rasterization writes into the
// current grid; Flush compares it with the previous grid, emits a cursor move and
// a coloured glyph for every changed cell and copies those cells across, so the
// previous grid matches the current one again after each emission.
package framebuf

import (
	"io"
	"strconv"

	"golang.org/x/text/width"

	"ief/engine/palette"
)

// Cell is one character cell.
type Cell struct {
	Glyph rune
	FG    palette.Color
	BG    palette.Color
}

// Background is the cell every clear pass resets to.
var Background = Cell{Glyph: ' ', FG: palette.Black, BG: palette.Black}

// Fallback replaces glyphs that cannot occupy exactly one cell.
const Fallback = '?'

const (
	// ClearScreen clears the display and homes the cursor.
	ClearScreen = "\x1b[2J"
	// HideCursor and ShowCursor toggle DECTCEM.
	HideCursor = "\x1b[?25l"
	ShowCursor = "\x1b[?25h"
)

// Buffer is a current/previous grid pair.
//
// It is not safe for concurrent use; the frame driver owns it.
type Buffer struct {
	width  int
	height int
	cur    []Cell
	prev   []Cell
	out    []byte
}

// New allocates a buffer with both grids set to Background.
func New(w, h int) *Buffer {
	b := &Buffer{}
	b.Reset(w, h)
	return b
}

// Reset rebuilds both grids at a new size.
func (b *Buffer) Reset(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	n := w * h
	b.width = w
	b.height = h
	if cap(b.cur) < n {
		b.cur = make([]Cell, n)
		b.prev = make([]Cell, n)
	} else {
		b.cur = b.cur[:n]
		b.prev = b.prev[:n]
	}
	fill(b.cur, Background)
	fill(b.prev, Background)
}

func fill(cells []Cell, c Cell) {
	for i := range cells {
		cells[i] = c
	}
}

func (b *Buffer) Size() (w, h int) { return b.width, b.height }

// Clear resets every cell of the current grid to Background.
func (b *Buffer) Clear() { fill(b.cur, Background) }

// Set writes a cell. Out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	c.Glyph = normalizeGlyph(c.Glyph)
	b.cur[y*b.width+x] = c
}

// At returns the current cell at (x, y).
func (b *Buffer) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Cell{}, false
	}
	return b.cur[y*b.width+x], true
}

// Previous returns the last emitted cell at (x, y).
func (b *Buffer) Previous(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Cell{}, false
	}
	return b.prev[y*b.width+x], true
}

// Synced reports whether the previous grid equals the current grid.
func (b *Buffer) Synced() bool {
	for i := range b.cur {
		if b.cur[i] != b.prev[i] {
			return false
		}
	}
	return true
}

// AppendDiff appends the changed cells to dst and copies them into the previous
// grid. Unchanged cells produce no output.
func (b *Buffer) AppendDiff(dst []byte) []byte {
	for i := range b.cur {
		c := b.cur[i]
		if c == b.prev[i] {
			continue
		}
		dst = appendCell(dst, i%b.width, i/b.width, c)
		b.prev[i] = c
	}
	return dst
}

// AppendFull appends a screen clear, cursor hide and every cell of the current
// grid, and syncs the previous grid.
func (b *Buffer) AppendFull(dst []byte) []byte {
	dst = append(dst, ClearScreen...)
	dst = append(dst, HideCursor...)
	for i, c := range b.cur {
		dst = appendCell(dst, i%b.width, i/b.width, c)
	}
	copy(b.prev, b.cur)
	return dst
}

// Flush emits the diff in a single write. Nothing is written when no cell changed.
func (b *Buffer) Flush(w io.Writer) (int, error) {
	b.out = b.AppendDiff(b.out[:0])
	if len(b.out) == 0 {
		return 0, nil
	}
	return w.Write(b.out)
}

// FlushFull emits AppendFull in a single write.
func (b *Buffer) FlushFull(w io.Writer) (int, error) {
	b.out = b.AppendFull(b.out[:0])
	return w.Write(b.out)
}

// AppendCursor appends a CUP sequence for zero-based (x, y).
func AppendCursor(dst []byte, x, y int) []byte {
	dst = append(dst, 0x1b, '[')
	dst = strconv.AppendInt(dst, int64(y+1), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(x+1), 10)
	return append(dst, 'H')
}

func appendCell(dst []byte, x, y int, c Cell) []byte {
	dst = AppendCursor(dst, x, y)
	return palette.AppendColored(dst, c.Glyph, c.FG, c.BG)
}

// normalizeGlyph keeps every cell one column wide: control characters become a
// space, wide and fullwidth glyphs become Fallback.
func normalizeGlyph(r rune) rune {
	if r < 0x20 || r == 0x7f {
		return ' '
	}
	if r < 0x80 {
		return r
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return Fallback
	}
	return r
}
