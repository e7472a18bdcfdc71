package scene

import (
	"fmt"
	"strings"

	"ief/engine/geom"
	"ief/engine/palette"
)

// Kind names an object variant.
type Kind uint8

const (
	KindSquare Kind = iota + 1
	KindTriangle
	KindRectangle
	KindEllipse
	KindCube
	KindPoint
)

var kindNames = [...]string{
	KindSquare:    "square",
	KindTriangle:  "triangle",
	KindRectangle: "rectangle",
	KindEllipse:   "ellipse",
	KindCube:      "cube",
	KindPoint:     "point",
}

func (k Kind) Valid() bool { return k >= KindSquare && k <= KindPoint }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Dimension reports which object set the kind belongs to.
func (k Kind) Dimension() Dimension {
	switch k {
	case KindSquare, KindTriangle, KindRectangle, KindEllipse:
		return Dim2D
	case KindCube, KindPoint:
		return Dim3D
	}
	return 0
}

// ParseKind accepts the kind names plus "rect", "vec" and "vector".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square":
		return KindSquare, nil
	case "triangle":
		return KindTriangle, nil
	case "rectangle", "rect":
		return KindRectangle, nil
	case "ellipse":
		return KindEllipse, nil
	case "cube":
		return KindCube, nil
	case "point", "vec", "vector":
		return KindPoint, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Shape holds the variant-specific parameters of an object. The set of
// implementations is closed.
type Shape interface {
	Kind() Kind
	scaled(f1, f2 float64) Shape
}

// Square is centred on the object position. Scaling multiplies BaseLength.
type Square struct {
	Length     float64
	BaseLength float64
}

// Triangle is equilateral with its centroid on the object position.
type Triangle struct {
	Length     float64
	BaseLength float64
}

type Rectangle struct {
	Width      float64
	Height     float64
	BaseWidth  float64
	BaseHeight float64
}

type Ellipse struct {
	RadiusA     float64
	RadiusB     float64
	BaseRadiusA float64
	BaseRadiusB float64
}

// Cube is axis aligned in model space before AngleX/Y/Z are applied in degrees.
type Cube struct {
	Length     float64
	BaseLength float64
	AngleX     float64
	AngleY     float64
	AngleZ     float64
}

// Point is a single projected cell.
type Point struct{}

func (Square) Kind() Kind    { return KindSquare }
func (Triangle) Kind() Kind  { return KindTriangle }
func (Rectangle) Kind() Kind { return KindRectangle }
func (Ellipse) Kind() Kind   { return KindEllipse }
func (Cube) Kind() Kind      { return KindCube }
func (Point) Kind() Kind     { return KindPoint }

func (s Square) scaled(f, _ float64) Shape {
	s.Length = s.BaseLength * f
	return s
}

func (t Triangle) scaled(f, _ float64) Shape {
	t.Length = t.BaseLength * f
	return t
}

func (r Rectangle) scaled(fw, fh float64) Shape {
	r.Width = r.BaseWidth * fw
	r.Height = r.BaseHeight * fh
	return r
}

func (e Ellipse) scaled(fa, fb float64) Shape {
	e.RadiusA = e.BaseRadiusA * fa
	e.RadiusB = e.BaseRadiusB * fb
	return e
}

func (c Cube) scaled(f, _ float64) Shape {
	c.Length = c.BaseLength * f
	return c
}

func (p Point) scaled(_, _ float64) Shape { return p }

func defaultShape(k Kind) Shape {
	switch k {
	case KindSquare:
		return Square{Length: 1, BaseLength: 1}
	case KindTriangle:
		return Triangle{Length: 1, BaseLength: 1}
	case KindRectangle:
		return Rectangle{Width: 2, Height: 1, BaseWidth: 2, BaseHeight: 1}
	case KindEllipse:
		return Ellipse{RadiusA: 1, RadiusB: 1, BaseRadiusA: 1, BaseRadiusB: 1}
	case KindCube:
		return Cube{Length: 3, BaseLength: 1}
	case KindPoint:
		return Point{}
	}
	return nil
}

// Object is one entry of a scene set. Fields are read through accessors;
// mutation goes through Scene so the dirty flag stays consistent.
type Object struct {
	id    string
	shape Shape
	pos   geom.Vec3
	angle float64
	color palette.Color
	fill  bool

	dirty    bool
	revision uint64
	verts    []geom.Vec2
	world    []geom.Vec3
}

func newObject(id string, k Kind) Object {
	o := Object{
		id:    id,
		shape: defaultShape(k),
		color: palette.White,
		dirty: true,
	}
	if k == KindCube {
		o.pos = geom.V3(0, 0, 40)
		o.fill = true
	}
	return o
}

func (o *Object) ID() string           { return o.id }
func (o *Object) Kind() Kind           { return o.shape.Kind() }
func (o *Object) Shape() Shape         { return o.shape }
func (o *Object) Position() geom.Vec3  { return o.pos }
func (o *Object) Angle() float64       { return o.angle }
func (o *Object) Color() palette.Color { return o.color }
func (o *Object) Fill() bool           { return o.fill }
func (o *Object) Dirty() bool          { return o.dirty }

// Revision counts cache recomputations.
func (o *Object) Revision() uint64 { return o.revision }

// Vertices returns a copy of the cached 2D screen-space vertices.
func (o *Object) Vertices() []geom.Vec2 { return append([]geom.Vec2(nil), o.verts...) }

// WorldVertices returns a copy of the cached cube world-space vertices.
func (o *Object) WorldVertices() []geom.Vec3 { return append([]geom.Vec3(nil), o.world...) }
