package scene

import (
	"fmt"

	"ief/engine/geom"
	"ief/engine/palette"
)

func (s *Scene) mutate(op string, h Handle, fn func(o *Object) error) error {
	o, err := s.resolve(h)
	if err != nil {
		return s.diag(fmt.Errorf("%s: %w", op, err))
	}
	if err := fn(o); err != nil {
		return s.diag(fmt.Errorf("%s %q: %w", op, o.id, err))
	}
	o.dirty = true
	return nil
}

func mismatch(o *Object) error {
	return fmt.Errorf("%w: %s", ErrKindMismatch, o.Kind())
}

// SetPosition2D moves a 2D object.
func (s *Scene) SetPosition2D(h Handle, x, y float64) error {
	return s.mutate("position", h, func(o *Object) error {
		if o.Kind().Dimension() != Dim2D {
			return mismatch(o)
		}
		o.pos = geom.V3(x, y, 0)
		return nil
	})
}

// SetPosition3D moves a cube or point.
func (s *Scene) SetPosition3D(h Handle, x, y, z float64) error {
	return s.mutate("position", h, func(o *Object) error {
		if o.Kind().Dimension() != Dim3D {
			return mismatch(o)
		}
		o.pos = geom.V3(x, y, z)
		return nil
	})
}

// SetRotation2D sets the rotation of a 2D object in degrees. Ellipses keep the
// angle but are drawn axis aligned.
func (s *Scene) SetRotation2D(h Handle, deg float64) error {
	return s.mutate("rotate", h, func(o *Object) error {
		if o.Kind().Dimension() != Dim2D {
			return mismatch(o)
		}
		o.angle = deg
		return nil
	})
}

// SetRotation3D sets the per-axis rotation of a cube in degrees.
func (s *Scene) SetRotation3D(h Handle, ax, ay, az float64) error {
	return s.mutate("rotate", h, func(o *Object) error {
		c, ok := o.shape.(Cube)
		if !ok {
			return mismatch(o)
		}
		c.AngleX, c.AngleY, c.AngleZ = ax, ay, az
		o.shape = c
		return nil
	})
}

// SetScale resizes an object relative to its base measurements. Squares,
// triangles and cubes read the first factor; rectangles and ellipses read two.
// Missing factors default to 1.
func (s *Scene) SetScale(h Handle, factors ...float64) error {
	f1, f2 := 1.0, 1.0
	if len(factors) > 0 {
		f1 = factors[0]
	}
	if len(factors) > 1 {
		f2 = factors[1]
	}
	return s.mutate("scale", h, func(o *Object) error {
		if o.Kind() == KindPoint {
			return mismatch(o)
		}
		o.shape = o.shape.scaled(f1, f2)
		return nil
	})
}

// SetFill enables interior fill. Repeated calls are no-ops.
func (s *Scene) SetFill(h Handle) error {
	return s.SetFilled(h, true)
}

// SetFilled switches between interior fill and outline drawing.
func (s *Scene) SetFilled(h Handle, fill bool) error {
	return s.mutate("fill", h, func(o *Object) error {
		if o.Kind() == KindPoint {
			return mismatch(o)
		}
		o.fill = fill
		return nil
	})
}

// SetColor sets the object colour. Invalid values fall back to white. Cached
// geometry stays valid.
func (s *Scene) SetColor(h Handle, c palette.Color) error {
	if !c.Valid() {
		c = palette.White
	}
	o, err := s.resolve(h)
	if err != nil {
		return s.diag(fmt.Errorf("color: %w", err))
	}
	o.color = c
	return nil
}

// NewCamera registers a default camera under id, replacing any previous one.
func (s *Scene) NewCamera(d Dimension, id string) error {
	switch d {
	case Dim2D:
		s.cams2[id] = geom.DefaultCamera2D()
	case Dim3D:
		s.cams3[id] = geom.DefaultCamera3D()
	default:
		return s.diag(fmt.Errorf("camera %q: %w: %s", id, ErrInvalidDimension, d))
	}
	return nil
}

// UseCamera makes a registered camera active for its dimension.
func (s *Scene) UseCamera(d Dimension, id string) error {
	var ok bool
	switch d {
	case Dim2D:
		var c geom.Camera2D
		if c, ok = s.cams2[id]; ok {
			s.cam2 = c
		}
	case Dim3D:
		var c geom.Camera3D
		if c, ok = s.cams3[id]; ok {
			s.cam3 = c
		}
	default:
		return s.diag(fmt.Errorf("camera %q: %w: %s", id, ErrInvalidDimension, d))
	}
	if !ok {
		return s.diag(fmt.Errorf("camera %q in %s scene: %w", id, d, ErrUnknownCamera))
	}
	return nil
}

// SetCamera3D replaces the active 3D camera. Cube caches stay valid: they are
// world-space.
func (s *Scene) SetCamera3D(c geom.Camera3D) { s.cam3 = c }

// SetCamera2D replaces the active 2D camera. 2D caches ignore the camera.
func (s *Scene) SetCamera2D(c geom.Camera2D) { s.cam2 = c }

func (s *Scene) Camera3D() geom.Camera3D { return s.cam3 }
func (s *Scene) Camera2D() geom.Camera2D { return s.cam2 }
