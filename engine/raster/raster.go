// Package raster draws lines, filled polygons and ellipses into a cell grid.
package raster

import (
	"math"
	"sort"

	"ief/engine/framebuf"
	"ief/engine/geom"
)

// Target is a grid that accepts cell writes. Implementations ignore
// out-of-range coordinates.
type Target interface {
	Size() (w, h int)
	Set(x, y int, c framebuf.Cell)
}

// SetPixel rounds (x, y) to the nearest cell and writes c. Off-grid and
// non-finite coordinates are silently dropped.
func SetPixel(t Target, x, y float64, c framebuf.Cell) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	w, h := t.Size()
	if x < -1 || y < -1 || x > float64(w)+1 || y > float64(h)+1 {
		return
	}
	ix, iy := geom.Round(x), geom.Round(y)
	if ix < 0 || iy < 0 || ix >= w || iy >= h {
		return
	}
	t.Set(ix, iy, c)
}

// Line draws the 8-connected Bresenham path from (x0, y0) to (x1, y1),
// both endpoints included.
func Line(t Target, x0, y0, x1, y1 int, c framebuf.Cell) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		t.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// LineF rounds both endpoints and draws a Line. Non-finite endpoints draw
// nothing. Segments reaching far outside the grid are first clipped to a guard
// band around it so near-plane projections stay cheap.
func LineF(t Target, a, b geom.Vec2, c framebuf.Cell) {
	if !finite(a) || !finite(b) {
		return
	}
	w, h := t.Size()
	g := float64(w + h + 1)
	a, b, ok := clipSegment(a, b, -g, -g, float64(w)+g, float64(h)+g)
	if !ok {
		return
	}
	Line(t, geom.Round(a.X), geom.Round(a.Y), geom.Round(b.X), geom.Round(b.Y), c)
}

// clipSegment is Liang–Barsky against the box [x0,x1]×[y0,y1]. Segments fully
// inside are returned unchanged.
func clipSegment(a, b geom.Vec2, x0, y0, x1, y1 float64) (geom.Vec2, geom.Vec2, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - x0},
		{dx, x1 - a.X},
		{-dy, a.Y - y0},
		{dy, y1 - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return a, b, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	na, nb := a, b
	if t0 > 0 {
		na = geom.Vec2{X: a.X + t0*dx, Y: a.Y + t0*dy}
	}
	if t1 < 1 {
		nb = geom.Vec2{X: a.X + t1*dx, Y: a.Y + t1*dy}
	}
	return na, nb, true
}

// FillPolygon fills an even-odd polygon scanline by scanline. Each scanline
// between ceil(minY) and floor(maxY) is crossed with every edge using the
// half-open test, the crossings are sorted and consecutive pairs are joined.
func FillPolygon(t Target, pts []geom.Vec2, c framebuf.Cell) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		if !finite(p) {
			return
		}
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	w, h := t.Size()
	// Clamp before converting; far projected vertices overflow int.
	yStart := int(math.Ceil(math.Max(minY, 0)))
	yEnd := int(math.Floor(math.Min(maxY, float64(h-1))))

	xs := make([]float64, 0, len(pts))
	for y := yStart; y <= yEnd; y++ {
		xs = crossings(xs[:0], pts, float64(y))
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := geom.Round(clampFloat(xs[i], -1, float64(w)))
			x1 := geom.Round(clampFloat(xs[i+1], -1, float64(w)))
			Line(t, x0, y, x1, y, c)
		}
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// crossings appends the X coordinates where the scanline y crosses the
// polygon's edges, sorted ascending.
func crossings(dst []float64, pts []geom.Vec2, y float64) []float64 {
	for i := range pts {
		p1 := pts[i]
		p2 := pts[(i+1)%len(pts)]
		if p1.Y == p2.Y {
			continue
		}
		if (y >= p1.Y && y < p2.Y) || (y >= p2.Y && y < p1.Y) {
			dst = append(dst, (y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y)+p1.X)
		}
	}
	sort.Float64s(dst)
	return dst
}

func finite(p geom.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
