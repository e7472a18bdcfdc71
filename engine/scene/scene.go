package scene

import (
	"errors"
	"fmt"
	"strings"

	"ief/engine/geom"
	"ief/hal"
)

var (
	ErrDuplicateID      = errors.New("duplicate object id")
	ErrUnknownObject    = errors.New("unknown object")
	ErrInvalidDimension = errors.New("invalid scene dimension")
	ErrUnknownKind      = errors.New("unknown object kind")
	ErrKindMismatch     = errors.New("operation does not apply to object")
	ErrUnknownCamera    = errors.New("unknown camera")
)

// Dimension selects one of the two object sets.
type Dimension uint8

const (
	Dim2D Dimension = iota + 1
	Dim3D
)

func (d Dimension) Valid() bool { return d == Dim2D || d == Dim3D }

func (d Dimension) String() string {
	switch d {
	case Dim2D:
		return "2d"
	case Dim3D:
		return "3d"
	default:
		return fmt.Sprintf("dimension(%d)", uint8(d))
	}
}

// ParseDimension accepts "2d" and "3d" in any case.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2d":
		return Dim2D, nil
	case "3d":
		return Dim3D, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, s)
}

// Handle addresses an object. The zero Handle is never valid.
type Handle struct {
	dim   Dimension
	index uint32
	gen   uint32
}

func (h Handle) Valid() bool          { return h.gen != 0 }
func (h Handle) Dimension() Dimension { return h.dim }

func (h Handle) String() string {
	if !h.Valid() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%s#%d.%d)", h.dim, h.index, h.gen)
}

type objectSet struct {
	objs []Object
	byID map[string]uint32
}

func (set *objectSet) reset() {
	set.objs = set.objs[:0]
	set.byID = make(map[string]uint32)
}

// Scene is an engine context: both object sets, the camera registries and the
// active dimension. It is not safe for concurrent use.
type Scene struct {
	log hal.Logger
	gen uint32

	sets [2]objectSet

	cam2  geom.Camera2D
	cam3  geom.Camera3D
	cams2 map[string]geom.Camera2D
	cams3 map[string]geom.Camera3D

	active Dimension

	faces []face
}

// New returns an empty scene rendering the 3D set through a default camera.
// log may be nil.
func New(log hal.Logger) *Scene {
	s := &Scene{log: log}
	s.Reset()
	return s
}

// Reset drops every object and camera. Handles issued before the reset stop
// resolving.
func (s *Scene) Reset() {
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	for i := range s.sets {
		s.sets[i].reset()
	}
	s.cam2 = geom.DefaultCamera2D()
	s.cam3 = geom.DefaultCamera3D()
	s.cams2 = map[string]geom.Camera2D{"main": s.cam2}
	s.cams3 = map[string]geom.Camera3D{"main": s.cam3}
	s.active = Dim3D
}

// SetLogger replaces the diagnostics sink. nil discards.
func (s *Scene) SetLogger(log hal.Logger) { s.log = log }

// SetActive selects the dimension Render draws. It is not validated here; an
// invalid selector makes Render fail.
func (s *Scene) SetActive(d Dimension) { s.active = d }

func (s *Scene) Active() Dimension { return s.active }

// Len returns the number of objects in a dimension.
func (s *Scene) Len(d Dimension) int {
	set := s.set(d)
	if set == nil {
		return 0
	}
	return len(set.objs)
}

func (s *Scene) set(d Dimension) *objectSet {
	if !d.Valid() {
		return nil
	}
	return &s.sets[d-1]
}

func (s *Scene) diag(err error) error {
	if s.log != nil {
		s.log.WriteLineString("scene: " + err.Error())
	}
	return err
}

// Create adds an object with default parameters. A duplicate id in the same
// dimension is rejected and the existing object is left untouched.
func (s *Scene) Create(d Dimension, k Kind, id string) (Handle, error) {
	set := s.set(d)
	if set == nil {
		return Handle{}, s.diag(fmt.Errorf("create %q: %w: %s", id, ErrInvalidDimension, d))
	}
	if !k.Valid() {
		return Handle{}, s.diag(fmt.Errorf("create %q: %w: %s", id, ErrUnknownKind, k))
	}
	if k.Dimension() != d {
		return Handle{}, s.diag(fmt.Errorf("create %q: %w: %s is not a %s kind", id, ErrKindMismatch, k, d))
	}
	if _, ok := set.byID[id]; ok {
		return Handle{}, s.diag(fmt.Errorf("create %s %q in %s scene: %w", k, id, d, ErrDuplicateID))
	}

	idx := uint32(len(set.objs))
	set.objs = append(set.objs, newObject(id, k))
	set.byID[id] = idx
	return Handle{dim: d, index: idx, gen: s.gen}, nil
}

// Find returns the handle of an existing object.
func (s *Scene) Find(d Dimension, id string) (Handle, error) {
	set := s.set(d)
	if set == nil {
		return Handle{}, s.diag(fmt.Errorf("find %q: %w: %s", id, ErrInvalidDimension, d))
	}
	idx, ok := set.byID[id]
	if !ok {
		return Handle{}, s.diag(fmt.Errorf("find %q in %s scene: %w", id, d, ErrUnknownObject))
	}
	return Handle{dim: d, index: idx, gen: s.gen}, nil
}

// Lookup is Find without the diagnostic.
func (s *Scene) Lookup(d Dimension, id string) (Handle, bool) {
	set := s.set(d)
	if set == nil {
		return Handle{}, false
	}
	idx, ok := set.byID[id]
	if !ok {
		return Handle{}, false
	}
	return Handle{dim: d, index: idx, gen: s.gen}, true
}

// Object resolves a handle for read access.
func (s *Scene) Object(h Handle) (*Object, error) {
	o, err := s.resolve(h)
	if err != nil {
		return nil, s.diag(err)
	}
	return o, nil
}

func (s *Scene) resolve(h Handle) (*Object, error) {
	set := s.set(h.dim)
	if !h.Valid() || h.gen != s.gen || set == nil || int(h.index) >= len(set.objs) {
		return nil, fmt.Errorf("%s: %w", h, ErrUnknownObject)
	}
	return &set.objs[h.index], nil
}
