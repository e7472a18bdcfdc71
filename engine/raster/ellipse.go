package raster

import (
	"math"

	"ief/engine/framebuf"
	"ief/engine/geom"
)

// maxRadius bounds the midpoint loops; nothing larger fits a terminal.
const maxRadius = 1 << 15

// EllipsePoints runs the two-region midpoint algorithm and returns every plotted
// point, four quadrant mirrors per step. radiusY is divided by the aspect ratio
// first so the outline looks round on terminal cells.
//
// Points are not rounded; SetPixel does that when they are drawn.
func EllipsePoints(dst []geom.Vec2, center geom.Vec2, radiusX, radiusY float64) []geom.Vec2 {
	if !finite(center) || !finite(geom.Vec2{X: radiusX, Y: radiusY}) {
		return dst
	}
	if math.Abs(radiusX) > maxRadius || math.Abs(radiusY) > maxRadius {
		return dst
	}
	rx := radiusX
	ry := radiusY / geom.AspectRatio
	rx2, ry2 := rx*rx, ry*ry

	plot := func(x, y float64) []geom.Vec2 {
		return append(dst,
			geom.Vec2{X: center.X + x, Y: center.Y + y},
			geom.Vec2{X: center.X - x, Y: center.Y + y},
			geom.Vec2{X: center.X + x, Y: center.Y - y},
			geom.Vec2{X: center.X - x, Y: center.Y - y},
		)
	}

	x, y := 0.0, ry

	// Region 1: slope magnitude below 1, step x.
	d1 := ry2 - rx2*ry + 0.25*rx2
	dx := 2 * ry2 * x
	dy := 2 * rx2 * y
	for dx < dy {
		dst = plot(x, y)
		x++
		dx += 2 * ry2
		if d1 < 0 {
			d1 += dx + ry2
		} else {
			y--
			dy -= 2 * rx2
			d1 += dx - dy + ry2
		}
	}

	// Region 2: step y.
	d2 := ry2*(x+0.5)*(x+0.5) + rx2*(y-1)*(y-1) - rx2*ry2
	for y >= 0 {
		dst = plot(x, y)
		y--
		dy -= 2 * rx2
		if d2 > 0 {
			d2 += rx2 - dy
		} else {
			x++
			dx += 2 * ry2
			d2 += dx - dy + rx2
		}
	}
	return dst
}

// Ellipse draws the outline of an axis-aligned ellipse. Fill and rotation are
// not supported.
func Ellipse(t Target, center geom.Vec2, radiusX, radiusY float64, c framebuf.Cell) {
	DrawPoints(t, EllipsePoints(nil, center, radiusX, radiusY), c)
}

// DrawPoints writes c at every point.
func DrawPoints(t Target, pts []geom.Vec2, c framebuf.Cell) {
	for _, p := range pts {
		SetPixel(t, p.X, p.Y, c)
	}
}
