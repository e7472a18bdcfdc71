// Package palette is the fixed 16-colour terminal palette.
//
// Colours are addressed by name ("red", "bright_blue") and encoded as SGR
// parameters: 30–37/90–97 for foreground, 40–47/100–107 for background.
package palette

import "strconv"

// Color is a palette index in 0..15.
type Color uint8

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// Count is the number of palette entries.
const Count = 16

var names = [Count]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// rgb approximates the xterm defaults, used by pixel surfaces.
var rgb = [Count][3]uint8{
	{0x00, 0x00, 0x00}, {0xcd, 0x00, 0x00}, {0x00, 0xcd, 0x00}, {0xcd, 0xcd, 0x00},
	{0x00, 0x00, 0xee}, {0xcd, 0x00, 0xcd}, {0x00, 0xcd, 0xcd}, {0xe5, 0xe5, 0xe5},
	{0x7f, 0x7f, 0x7f}, {0xff, 0x00, 0x00}, {0x00, 0xff, 0x00}, {0xff, 0xff, 0x00},
	{0x5c, 0x5c, 0xff}, {0xff, 0x00, 0xff}, {0x00, 0xff, 0xff}, {0xff, 0xff, 0xff},
}

func (c Color) Valid() bool { return c < Count }

func (c Color) String() string {
	if !c.Valid() {
		return "color(" + strconv.Itoa(int(c)) + ")"
	}
	return names[c]
}

// RGB returns the display colour of c; invalid entries read as white.
func (c Color) RGB() (r, g, b uint8) {
	if !c.Valid() {
		c = White
	}
	v := rgb[c]
	return v[0], v[1], v[2]
}

// FG returns the SGR foreground parameter. Invalid entries use white.
func (c Color) FG() int {
	if !c.Valid() {
		return 37
	}
	if c >= BrightBlack {
		return 90 + int(c-BrightBlack)
	}
	return 30 + int(c)
}

// BG returns the SGR background parameter. Invalid entries use black.
func (c Color) BG() int {
	if !c.Valid() {
		return 40
	}
	if c >= BrightBlack {
		return 100 + int(c-BrightBlack)
	}
	return 40 + int(c)
}

// Lookup resolves an exact palette name such as "bright_green".
func Lookup(name string) (Color, bool) {
	for i, v := range names {
		if v == name {
			return Color(i), true
		}
	}
	return 0, false
}

// Foreground resolves a foreground name, falling back to white.
func Foreground(name string) Color {
	if c, ok := Lookup(name); ok {
		return c
	}
	return White
}

// Background resolves a background name, falling back to black.
func Background(name string) Color {
	if c, ok := Lookup(name); ok {
		return c
	}
	return Black
}

// FromFG maps an SGR foreground parameter back to a colour.
func FromFG(p int) (Color, bool) {
	switch {
	case p >= 30 && p <= 37:
		return Color(p - 30), true
	case p >= 90 && p <= 97:
		return BrightBlack + Color(p-90), true
	}
	return 0, false
}

// FromBG maps an SGR background parameter back to a colour.
func FromBG(p int) (Color, bool) {
	switch {
	case p >= 40 && p <= 47:
		return Color(p - 40), true
	case p >= 100 && p <= 107:
		return BrightBlack + Color(p-100), true
	}
	return 0, false
}

// AppendSGR appends "ESC[fg;bgm" to dst.
func AppendSGR(dst []byte, fg, bg Color) []byte {
	dst = append(dst, 0x1b, '[')
	dst = strconv.AppendInt(dst, int64(fg.FG()), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(bg.BG()), 10)
	return append(dst, 'm')
}

// AppendColored appends the glyph wrapped in its colours followed by an SGR reset.
func AppendColored(dst []byte, glyph rune, fg, bg Color) []byte {
	dst = AppendSGR(dst, fg, bg)
	dst = appendRune(dst, glyph)
	return append(dst, Reset...)
}

// Reset is the SGR reset sequence.
const Reset = "\x1b[0m"

func appendRune(dst []byte, r rune) []byte {
	if r < 0x80 {
		return append(dst, byte(r))
	}
	return append(dst, string(r)...)
}
