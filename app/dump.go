package app

import (
	"bufio"
	"io"
	"strings"

	"ief/engine/palette"
	"ief/engine/vt"
	"ief/hal"
)

// DumpScreen writes the glyphs of a headless surface as plain text, one line
// per row, trailing blanks trimmed. Coloured blank cells print as '#'.
func DumpScreen(w io.Writer, surf *hal.HeadlessSurface) error {
	bw := bufio.NewWriter(w)
	surf.View(func(s *vt.Screen) {
		cols, rows := s.Size()
		line := make([]rune, cols)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				c, _ := s.Cell(x, y)
				switch {
				case c.Glyph != ' ':
					line[x] = c.Glyph
				case c.BG != palette.Black:
					line[x] = '#'
				default:
					line[x] = ' '
				}
			}
			bw.WriteString(strings.TrimRight(string(line), " "))
			bw.WriteByte('\n')
		}
	})
	return bw.Flush()
}
