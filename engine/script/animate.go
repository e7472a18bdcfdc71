package script

import (
	"math"

	"ief/engine/scene"
)

type animKind uint8

const (
	animSpin animKind = iota + 1
	animDrift
)

// animation adds a fixed increment to an object every tick.
type animation struct {
	kind animKind
	h    scene.Handle
	by   [3]float64
}

func (a *animation) step(s *scene.Scene) {
	o, err := s.Object(a.h)
	if err != nil {
		return
	}
	switch a.kind {
	case animSpin:
		if c, ok := o.Shape().(scene.Cube); ok {
			s.SetRotation3D(a.h, wrap(c.AngleX+a.by[0]), wrap(c.AngleY+a.by[1]), wrap(c.AngleZ+a.by[2]))
			return
		}
		s.SetRotation2D(a.h, wrap(o.Angle()+a.by[0]))
	case animDrift:
		p := o.Position()
		if a.h.Dimension() == scene.Dim2D {
			s.SetPosition2D(a.h, p.X+a.by[0], p.Y+a.by[1])
			return
		}
		s.SetPosition3D(a.h, p.X+a.by[0], p.Y+a.by[1], p.Z+a.by[2])
	}
}

// wrap keeps angles in (-360, 360).
func wrap(deg float64) float64 { return math.Mod(deg, 360) }
