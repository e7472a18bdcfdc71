package scene

import (
	"fmt"

	"ief/engine/framebuf"
	"ief/engine/geom"
	"ief/engine/palette"
	"ief/engine/raster"
)

// EdgeGlyph is drawn along cube edges.
const EdgeGlyph = '•'

func solid(c palette.Color) framebuf.Cell {
	return framebuf.Cell{Glyph: ' ', FG: c, BG: c}
}

// Render draws every object of the active dimension in insertion order.
func (s *Scene) Render(t raster.Target) error {
	return s.RenderDimension(s.active, t)
}

// RenderDimension draws every object of d in insertion order. Nothing is drawn
// when d is not a valid dimension.
func (s *Scene) RenderDimension(d Dimension, t raster.Target) error {
	set := s.set(d)
	if set == nil {
		return s.diag(fmt.Errorf("render: %w: %s", ErrInvalidDimension, d))
	}
	for i := range set.objs {
		s.draw(&set.objs[i], t)
	}
	return nil
}

func (s *Scene) draw(o *Object, t raster.Target) {
	switch sh := o.shape.(type) {
	case Square, Triangle, Rectangle:
		drawPolygon(t, vertices2D(o), o.fill, solid(o.color))
	case Ellipse:
		raster.DrawPoints(t, vertices2D(o), solid(o.color))
	case Cube:
		s.drawCube(o, sh, t)
	case Point:
		s.drawPoint(o, t)
	}
}

func drawPolygon(t raster.Target, verts []geom.Vec2, fill bool, c framebuf.Cell) {
	if fill {
		raster.FillPolygon(t, verts, c)
		return
	}
	for i := range verts {
		raster.LineF(t, verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (s *Scene) drawCube(o *Object, c Cube, t raster.Target) {
	w, h := t.Size()
	var corners [8]projected
	projectCorners(&corners, worldVertices(o, c), s.cam3, w, h)

	if o.fill {
		s.faces = visibleFaces(s.faces[:0], &corners)
		paintOrder(s.faces)
		for i := range s.faces {
			raster.FillPolygon(t, s.faces[i].pts[:], solid(o.color))
		}
	}

	edge := framebuf.Cell{Glyph: EdgeGlyph, FG: o.color, BG: o.color}
	for _, e := range cubeEdges {
		a, b := corners[e[0]], corners[e[1]]
		if !a.OK || !b.OK {
			continue
		}
		raster.LineF(t, a.Screen, b.Screen, edge)
	}
}

// drawPoint projects without aspect correction.
func (s *Scene) drawPoint(o *Object, t raster.Target) {
	w, h := t.Size()
	p, ok := geom.Project(geom.CameraTransform(o.pos, s.cam3), s.cam3.Distance)
	if !ok {
		return
	}
	p = geom.ToScreen(p, w, h)
	raster.SetPixel(t, p.X, p.Y, solid(o.color))
	o.dirty = false
}
