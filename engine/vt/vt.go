// Package vt is a VT100 subset screen model.
//
// It replays the stream the frame driver emits (cursor positioning, SGR colours,
// erase in display/line, cursor visibility and the window-title OSC) into a cell
// grid. Pixel surfaces draw from it and tests use it as an oracle.
package vt

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"ief/engine/palette"
)

// Cell is one screen cell.
type Cell struct {
	Glyph rune
	FG    palette.Color
	BG    palette.Color
}

var blank = Cell{Glyph: ' ', FG: palette.White, BG: palette.Black}

type state uint8

const (
	stateInput state = iota
	stateEscape
	stateCSI
	stateOSC
	stateOSCEscape
)

// Screen is a fixed-size grid driven by Write. It is not safe for concurrent use.
type Screen struct {
	cols int
	rows int
	grid []Cell

	x, y   int
	fg, bg palette.Color

	cursorHidden bool
	title        string

	st      state
	params  []byte
	osc     []byte
	pending []byte

	writes int
	bytes  int
}

// New returns a blank screen.
func New(cols, rows int) *Screen {
	s := &Screen{}
	s.Resize(cols, rows)
	return s
}

// Resize discards the contents and resets the cursor and attributes.
func (s *Screen) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.grid = make([]Cell, cols*rows)
	s.fill(0, len(s.grid))
	s.x, s.y = 0, 0
	s.fg, s.bg = palette.White, palette.Black
	s.st = stateInput
	s.params = s.params[:0]
	s.pending = s.pending[:0]
}

func (s *Screen) Size() (cols, rows int) { return s.cols, s.rows }

// Cell returns the cell at zero-based (x, y).
func (s *Screen) Cell(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return Cell{}, false
	}
	return s.grid[y*s.cols+x], true
}

// Cursor returns the zero-based cursor position.
func (s *Screen) Cursor() (x, y int) { return s.x, s.y }

func (s *Screen) CursorVisible() bool { return !s.cursorHidden }

// Title returns the last window title set through OSC 0 or 2.
func (s *Screen) Title() string { return s.title }

// Writes is the number of non-empty Write calls seen.
func (s *Screen) Writes() int { return s.writes }

// Bytes is the total number of bytes written.
func (s *Screen) Bytes() int { return s.bytes }

// Text returns row y as a string of glyphs.
func (s *Screen) Text(y int) string {
	if y < 0 || y >= s.rows {
		return ""
	}
	var b strings.Builder
	for _, c := range s.grid[y*s.cols : (y+1)*s.cols] {
		b.WriteRune(c.Glyph)
	}
	return b.String()
}

// Write consumes a chunk of the stream. It never fails.
func (s *Screen) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	s.writes++
	s.bytes += len(p)

	buf := p
	if len(s.pending) > 0 {
		s.pending = append(s.pending, p...)
		buf = s.pending
	}
	i := 0
	for i < len(buf) {
		b := buf[i]
		if s.st != stateInput || b < utf8.RuneSelf {
			s.putByte(b)
			i++
			continue
		}
		if !utf8.FullRune(buf[i:]) {
			break
		}
		r, sz := utf8.DecodeRune(buf[i:])
		s.put(r)
		i += sz
	}
	rest := buf[i:]
	if len(rest) > 0 {
		s.pending = append(s.pending[:0], rest...)
	} else {
		s.pending = s.pending[:0]
	}
	return len(p), nil
}

func (s *Screen) putByte(b byte) {
	switch s.st {
	case stateInput:
		switch b {
		case 0x1b:
			s.st = stateEscape
		case '\r':
			s.x = 0
		case '\n':
			s.newline()
		case '\b':
			if s.x > 0 {
				s.x--
			}
		case 0x07:
		default:
			if b >= 0x20 {
				s.put(rune(b))
			}
		}

	case stateEscape:
		switch b {
		case '[':
			s.params = s.params[:0]
			s.st = stateCSI
		case ']':
			s.osc = s.osc[:0]
			s.st = stateOSC
		case 'c':
			s.Resize(s.cols, s.rows)
		default:
			s.st = stateInput
		}

	case stateCSI:
		switch {
		case b >= 0x20 && b <= 0x3f:
			s.params = append(s.params, b)
		case b >= 0x40 && b <= 0x7e:
			s.csi(b)
			s.st = stateInput
		default:
			s.st = stateInput
		}

	case stateOSC:
		switch b {
		case 0x07:
			s.endOSC()
		case 0x1b:
			s.st = stateOSCEscape
		default:
			s.osc = append(s.osc, b)
		}

	case stateOSCEscape:
		if b == '\\' {
			s.endOSC()
			return
		}
		s.st = stateInput
	}
}

func (s *Screen) endOSC() {
	s.st = stateInput
	body := string(s.osc)
	code, text, ok := strings.Cut(body, ";")
	if !ok {
		return
	}
	if code == "0" || code == "2" {
		s.title = text
	}
}

func (s *Screen) put(r rune) {
	if s.x >= s.cols {
		s.newline()
	}
	if s.y >= 0 && s.y < s.rows && s.x >= 0 && s.x < s.cols {
		s.grid[s.y*s.cols+s.x] = Cell{Glyph: r, FG: s.fg, BG: s.bg}
	}
	s.x++
}

func (s *Screen) newline() {
	s.x = 0
	if s.y+1 < s.rows {
		s.y++
		return
	}
	if s.rows == 0 {
		return
	}
	copy(s.grid, s.grid[s.cols:])
	s.fill((s.rows-1)*s.cols, len(s.grid))
}

func (s *Screen) fill(from, to int) {
	for i := from; i < to; i++ {
		s.grid[i] = blank
	}
}

func (s *Screen) csi(final byte) {
	raw := string(s.params)
	private := strings.HasPrefix(raw, "?")
	if private {
		raw = raw[1:]
	}
	args := parseParams(raw)

	switch final {
	case 'H', 'f':
		row, col := arg(args, 0, 1), arg(args, 1, 1)
		s.y = clampInt(row-1, 0, s.rows-1)
		s.x = clampInt(col-1, 0, s.cols-1)
	case 'J':
		switch arg(args, 0, 0) {
		case 2, 3:
			s.fill(0, len(s.grid))
		case 1:
			s.fill(0, s.y*s.cols+s.x+1)
		default:
			s.fill(s.y*s.cols+s.x, len(s.grid))
		}
	case 'K':
		if s.y < 0 || s.y >= s.rows {
			return
		}
		start := s.y * s.cols
		switch arg(args, 0, 0) {
		case 1:
			s.fill(start, start+s.x+1)
		case 2:
			s.fill(start, start+s.cols)
		default:
			s.fill(start+s.x, start+s.cols)
		}
	case 'h', 'l':
		if private && arg(args, 0, 0) == 25 {
			s.cursorHidden = final == 'l'
		}
	case 'm':
		s.sgr(args)
	}
}

func (s *Screen) sgr(args []int) {
	if len(args) == 0 {
		args = []int{0}
	}
	for _, p := range args {
		switch {
		case p == 0:
			s.fg, s.bg = palette.White, palette.Black
		case p == 39:
			s.fg = palette.White
		case p == 49:
			s.bg = palette.Black
		default:
			if c, ok := palette.FromFG(p); ok {
				s.fg = c
			} else if c, ok := palette.FromBG(p); ok {
				s.bg = c
			}
		}
	}
}

func parseParams(raw string) []int {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = -1
		}
		out[i] = n
	}
	return out
}

func arg(args []int, i, def int) int {
	if i >= len(args) || args[i] <= 0 {
		return def
	}
	return args[i]
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
