package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts a Framebuffer to the tinyfont and tinyterm display
// interfaces.
type fbDisplay struct {
	fb Framebuffer
}

func newFBDisplay(fb Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := packRGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) fbWidth() int16 {
	w, _ := d.Size()
	return w
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := packRGB565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *fbDisplay) SetScroll(line int16) {}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error { return nil }

// paneDisplay is a horizontal band of another display, origin at its top.
type paneDisplay struct {
	base   *fbDisplay
	top    int16
	height int16
}

func (p *paneDisplay) Size() (x, y int16) {
	w, _ := p.base.Size()
	return w, p.height
}

func (p *paneDisplay) SetPixel(x, y int16, c color.RGBA) {
	if y < 0 || y >= p.height {
		return
	}
	p.base.SetPixel(x, p.top+y, c)
}

func (p *paneDisplay) Display() error { return nil }

func (p *paneDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if y < 0 {
		height += y
		y = 0
	}
	if y+height > p.height {
		height = p.height - y
	}
	if height <= 0 {
		return nil
	}
	return p.base.FillRectangle(x, p.top+y, width, height, c)
}

func (p *paneDisplay) SetScroll(line int16) {}

func (p *paneDisplay) SetRotation(rotation drivers.Rotation) error { return nil }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
