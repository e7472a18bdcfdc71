package framebuf

import (
	"bytes"
	"strings"
	"testing"

	"ief/engine/palette"
	"ief/engine/vt"
)

type countingWriter struct {
	calls int
	buf   bytes.Buffer
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.calls++
	return w.buf.Write(p)
}

func TestFlushNoChangeWritesNothing(t *testing.T) {
	b := New(8, 4)
	w := &countingWriter{}

	n, err := b.Flush(w)
	if err != nil || n != 0 || w.calls != 0 {
		t.Fatalf("Flush() on untouched grid = %d,%v calls=%d; want no write", n, err, w.calls)
	}

	b.Set(1, 1, Cell{Glyph: '#', FG: palette.Red, BG: palette.Red})
	if prev, _ := b.Previous(1, 1); prev != Background {
		t.Fatalf("Previous(1,1) before flush = %+v, want background", prev)
	}
	if _, err := b.Flush(w); err != nil {
		t.Fatalf("Flush() err = %v", err)
	}
	if w.calls != 1 {
		t.Fatalf("Flush() calls = %d, want 1", w.calls)
	}
	if prev, _ := b.Previous(1, 1); prev.Glyph != '#' || prev.BG != palette.Red {
		t.Fatalf("Previous(1,1) after flush = %+v, want the emitted cell", prev)
	}
	if _, ok := b.Previous(8, 0); ok {
		t.Fatalf("Previous out of bounds reported ok")
	}

	// Same content again: zero bytes.
	b.Clear()
	b.Set(1, 1, Cell{Glyph: '#', FG: palette.Red, BG: palette.Red})
	n, _ = b.Flush(w)
	if n != 0 || w.calls != 1 {
		t.Fatalf("second Flush() = %d bytes, calls=%d; want 0, 1", n, w.calls)
	}
}

func TestDiffEmitsOnlyChangedCells(t *testing.T) {
	b := New(5, 3)
	b.Set(4, 2, Cell{Glyph: 'x', FG: palette.Green, BG: palette.Black})
	got := string(b.AppendDiff(nil))
	want := "\x1b[3;5H\x1b[32;40mx\x1b[0m"
	if got != want {
		t.Fatalf("AppendDiff() = %q, want %q", got, want)
	}
	if !b.Synced() {
		t.Fatalf("previous grid not synced after diff")
	}

	// Clearing back restores the background cell, which is a change too.
	b.Clear()
	got = string(b.AppendDiff(nil))
	want = "\x1b[3;5H\x1b[30;40m \x1b[0m"
	if got != want {
		t.Fatalf("AppendDiff() after clear = %q, want %q", got, want)
	}
}

func TestSetOutOfBoundsIgnored(t *testing.T) {
	b := New(3, 3)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		b.Set(p[0], p[1], Cell{Glyph: 'x'})
	}
	if out := b.AppendDiff(nil); len(out) != 0 {
		t.Fatalf("out-of-bounds Set produced output %q", out)
	}
}

func TestGlyphNormalization(t *testing.T) {
	b := New(3, 1)
	b.Set(0, 0, Cell{Glyph: '世'})
	b.Set(1, 0, Cell{Glyph: '\n'})
	b.Set(2, 0, Cell{Glyph: '•'})
	tcs := []rune{Fallback, ' ', '•'}
	for x, want := range tcs {
		c, _ := b.At(x, 0)
		if c.Glyph != want {
			t.Fatalf("At(%d,0).Glyph = %q, want %q", x, c.Glyph, want)
		}
	}
}

func TestFullDrawReplaysIntoScreen(t *testing.T) {
	b := New(6, 3)
	b.Set(0, 0, Cell{Glyph: 'a', FG: palette.Yellow, BG: palette.Blue})
	b.Set(5, 2, Cell{Glyph: 'z', FG: palette.BrightCyan, BG: palette.Magenta})

	out := string(b.AppendFull(nil))
	if !strings.HasPrefix(out, ClearScreen+HideCursor) {
		t.Fatalf("AppendFull() prefix = %q", out[:10])
	}
	if got := strings.Count(out, "H\x1b["); got != 6*3 {
		t.Fatalf("AppendFull() cell count = %d, want %d", got, 6*3)
	}

	s := vt.New(6, 3)
	_, _ = s.Write([]byte(out))
	assertScreenMatches(t, b, s)
	if s.CursorVisible() {
		t.Fatalf("cursor visible after full draw")
	}
}

func TestDiffSequenceMatchesScreen(t *testing.T) {
	b := New(10, 5)
	s := vt.New(10, 5)
	_, _ = b.FlushFull(s)

	frames := [][]struct {
		x, y int
		c    Cell
	}{
		{{x: 1, y: 1, c: Cell{Glyph: 'o', FG: palette.Red, BG: palette.Black}}},
		{{x: 2, y: 1, c: Cell{Glyph: 'o', FG: palette.Red, BG: palette.Black}}, {x: 9, y: 4, c: Cell{Glyph: '*', FG: palette.White, BG: palette.BrightBlue}}},
		{},
	}
	for i, f := range frames {
		b.Clear()
		for _, p := range f {
			b.Set(p.x, p.y, p.c)
		}
		if _, err := b.Flush(s); err != nil {
			t.Fatalf("frame %d: Flush() err = %v", i, err)
		}
		assertScreenMatches(t, b, s)
	}
}

func assertScreenMatches(t *testing.T, b *Buffer, s *vt.Screen) {
	t.Helper()
	w, h := b.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want, _ := b.At(x, y)
			got, _ := s.Cell(x, y)
			if got.Glyph != want.Glyph || got.FG != want.FG || got.BG != want.BG {
				t.Fatalf("cell (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestResetRebuildsGrids(t *testing.T) {
	b := New(2, 2)
	b.Set(0, 0, Cell{Glyph: 'q'})
	b.Reset(4, 3)
	if w, h := b.Size(); w != 4 || h != 3 {
		t.Fatalf("Size() = %d,%d", w, h)
	}
	c, _ := b.At(0, 0)
	if c != Background || !b.Synced() {
		t.Fatalf("Reset() left stale cell %+v", c)
	}
}
