package hal

import (
	"bytes"
	"strings"
	"testing"

	"ief/engine/palette"
	"ief/engine/vt"
)

func TestLoggerTee(t *testing.T) {
	var a, b bytes.Buffer
	l := Tee(NewLogger(&a), nil, NewLogger(&b))
	l.WriteLineString("scene: one")
	l.WriteLineBytes([]byte("driver: two"))

	for _, buf := range []*bytes.Buffer{&a, &b} {
		if got := buf.String(); got != "scene: one\ndriver: two\n" {
			t.Fatalf("log = %q", got)
		}
	}
}

func TestOpenLogAppends(t *testing.T) {
	path := t.TempDir() + "/ief.log"
	for i := 0; i < 2; i++ {
		l, c, err := OpenLog(path)
		if err != nil {
			t.Fatalf("OpenLog: %v", err)
		}
		l.WriteLineString("line")
		if err := c.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	if _, _, err := OpenLog(t.TempDir() + "/missing/dir/ief.log"); err == nil {
		t.Fatalf("OpenLog in missing dir succeeded")
	}
	if _, c, err := OpenLog(""); err != nil || c.Close() != nil {
		t.Fatalf("OpenLog(stderr) = %v", err)
	}
}

func TestHeadlessResizeKeepsLatest(t *testing.T) {
	h := NewHeadless(Size{Cols: 10, Rows: 4})
	if _, err := h.Write([]byte("\x1b[2;3H\x1b[31;42mx")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	h.View(func(s *vt.Screen) {
		c, _ := s.Cell(2, 1)
		if c.Glyph != 'x' || c.FG != palette.Red || c.BG != palette.Green {
			t.Fatalf("cell = %+v", c)
		}
	})

	h.Resize(Size{Cols: 20, Rows: 6})
	h.Resize(Size{Cols: 30, Rows: 8})
	if got := <-h.Resized(); got != (Size{Cols: 30, Rows: 8}) {
		t.Fatalf("Resized = %+v, want latest size", got)
	}
	select {
	case sz := <-h.Resized():
		t.Fatalf("stale size %+v still queued", sz)
	default:
	}
	if got := h.Size(); got != (Size{Cols: 30, Rows: 8}) {
		t.Fatalf("Size = %+v", got)
	}
}

func TestDisplayFillAndClip(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	d := newFBDisplay(fb)
	red := rgba(palette.Red)

	_ = d.FillRectangle(-2, 1, 4, 10, red)
	want := packRGB565(red.R, red.G, red.B)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			got := uint16(fb.buf[y*fb.stride+x*2]) | uint16(fb.buf[y*fb.stride+x*2+1])<<8
			inside := x < 2 && y >= 1
			if inside != (got == want) {
				t.Fatalf("pixel (%d,%d) = %#04x, inside=%v", x, y, got, inside)
			}
		}
	}

	d.SetPixel(9, 9, red)
	d.SetPixel(-1, 0, red)

	p := &paneDisplay{base: d, top: 2, height: 1}
	if w, h := p.Size(); w != 4 || h != 1 {
		t.Fatalf("pane size = %dx%d", w, h)
	}
	white := rgba(palette.BrightWhite)
	p.SetPixel(3, 0, white)
	p.SetPixel(3, 1, white)
	if fb.buf[2*fb.stride+3*2] == 0 {
		t.Fatalf("pane pixel not mapped to framebuffer row 2")
	}
	if fb.buf[0*fb.stride+3*2] != 0 || fb.buf[1*fb.stride+3*2] != 0 {
		t.Fatalf("pane pixel leaked outside its band")
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	for c := palette.Color(0); c < palette.Count; c++ {
		r, g, b := c.RGB()
		rr, gg, bb := unpackRGB565(packRGB565(r, g, b))
		if absDiff(r, rr) > 8 || absDiff(g, gg) > 4 || absDiff(b, bb) > 8 {
			t.Fatalf("%s: %d,%d,%d -> %d,%d,%d", c, r, g, b, rr, gg, bb)
		}
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestPainterFillsCellBackgrounds(t *testing.T) {
	p := newCellPainter()
	s := vt.New(2, 1)
	s.Write([]byte("\x1b[1;1H\x1b[31;41m \x1b[0m"))

	w, h := p.pixels(Size{Cols: 2, Rows: 1}, 0)
	fb := newHostFramebuffer(w, h)
	p.paint(newFBDisplay(fb), s)

	r, g, b := palette.Red.RGB()
	want := packRGB565(r, g, b)
	px := func(x, y int) uint16 {
		return uint16(fb.buf[y*fb.stride+x*2]) | uint16(fb.buf[y*fb.stride+x*2+1])<<8
	}
	if got := px(1, 1); got != want {
		t.Fatalf("first cell pixel = %#04x, want %#04x", got, want)
	}
	if got := px(int(p.w)+1, 1); got != 0 {
		t.Fatalf("second cell pixel = %#04x, want black", got)
	}
}

func TestGridFor(t *testing.T) {
	p := newCellPainter()
	w, h := p.pixels(Size{Cols: 80, Rows: 24}, 4)
	if got := p.gridFor(w*2, h*2, 2, 4); got != (Size{Cols: 80, Rows: 24}) {
		t.Fatalf("gridFor(pixels) = %+v, want 80x24", got)
	}
	if got := p.gridFor(1, 1, 2, 4); got != (Size{Cols: 1, Rows: 1}) {
		t.Fatalf("gridFor(tiny) = %+v, want 1x1", got)
	}
}

func TestLogPaneFlush(t *testing.T) {
	p := newCellPainter()
	fb := newHostFramebuffer(p.pixels(Size{Cols: 40, Rows: 2}, 3))
	d := newFBDisplay(fb)
	pane := newLogPane()

	pane.WriteLineString("dropped before attach")
	if pane.flush() {
		t.Fatalf("flush drew without a terminal")
	}

	top := 2 * int(p.h)
	pane.attach(&paneDisplay{base: d, top: int16(top), height: 3 * p.h})
	pane.WriteLineString(strings.Repeat("#", 10))
	if !pane.flush() {
		t.Fatalf("flush drew nothing")
	}
	if pane.flush() {
		t.Fatalf("second flush redrew")
	}

	lit := false
	for i := top * fb.stride; i < len(fb.buf); i++ {
		if fb.buf[i] != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatalf("log pane left blank")
	}
	for i := 0; i < top*fb.stride; i++ {
		if fb.buf[i] != 0 {
			t.Fatalf("log pane drew over the grid at byte %d", i)
		}
	}
}
