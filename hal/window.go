package hal

import (
	"fmt"
	"image/color"
	"sync"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"ief/engine/palette"
	"ief/engine/vt"
)

// WindowConfig controls the desktop window surface.
type WindowConfig struct {
	Title string
	// Size is the initial grid size in cells.
	Size Size
	// LogLines is the height of the log pane below the grid. Zero hides it.
	LogLines int
	// Scale multiplies the window size. Zero means 2.
	Scale int
}

const (
	cellHeight = 10
	cellOffset = 7
)

var cellFont = &proggy.TinySZ8pt7b

// cellPainter draws a VT screen as coloured glyph cells.
type cellPainter struct {
	font   tinyfont.Fonter
	w      int16
	h      int16
	offset int16
}

func newCellPainter() *cellPainter {
	_, outbox := tinyfont.LineWidth(cellFont, "0")
	w := int16(outbox)
	if w <= 0 {
		w = 6
	}
	return &cellPainter{font: cellFont, w: w, h: cellHeight, offset: cellOffset}
}

func rgba(c palette.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// paint draws every cell of s with the grid origin at the top-left of d.
func (p *cellPainter) paint(d *fbDisplay, s *vt.Screen) {
	cols, rows := s.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c, _ := s.Cell(x, y)
			px, py := int16(x)*p.w, int16(y)*p.h
			_ = d.FillRectangle(px, py, p.w, p.h, rgba(c.BG))
			if c.Glyph != ' ' && c.FG != c.BG {
				tinyfont.DrawChar(d, p.font, px, py+p.offset, c.Glyph, rgba(c.FG))
			}
		}
	}
}

// gridFor returns the grid that fits a window of outW x outH pixels.
func (p *cellPainter) gridFor(outW, outH, scale, paneLines int) Size {
	if scale <= 0 {
		scale = 1
	}
	cols := outW / scale / int(p.w)
	rows := outH/scale/int(p.h) - paneLines
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return Size{Cols: cols, Rows: rows}
}

// pixels returns the framebuffer size for a grid plus the log pane.
func (p *cellPainter) pixels(sz Size, paneLines int) (w, h int) {
	return sz.Cols * int(p.w), (sz.Rows + paneLines) * int(p.h)
}

// logPane is a Logger that mirrors lines into a tinyterm terminal. Lines are
// queued by any goroutine and drawn by flush on the display goroutine.
type logPane struct {
	mu      sync.Mutex
	pending []string

	term *tinyterm.Terminal
}

func newLogPane() *logPane { return &logPane{} }

func (l *logPane) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, s)
}

func (l *logPane) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

// attach starts a fresh terminal on d. Earlier lines are not redrawn.
func (l *logPane) attach(d *paneDisplay) {
	t := tinyterm.NewTerminal(d)
	t.Configure(&tinyterm.Config{
		Font:              cellFont,
		FontHeight:        cellHeight,
		FontOffset:        6,
		UseSoftwareScroll: true,
	})
	_ = d.FillRectangle(0, 0, d.base.fbWidth(), d.height, color.RGBA{A: 0xFF})
	l.term = t
}

// flush draws queued lines. It reports whether anything was drawn.
func (l *logPane) flush() bool {
	l.mu.Lock()
	lines := l.pending
	l.pending = nil
	l.mu.Unlock()
	if l.term == nil || len(lines) == 0 {
		return false
	}
	for _, s := range lines {
		fmt.Fprintf(l.term, "\n%s", s)
	}
	l.term.Display()
	return true
}
