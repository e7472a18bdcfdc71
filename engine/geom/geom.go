package geom

import "math"

const (
	// AspectRatio compensates for terminal cells being about twice as tall as wide.
	AspectRatio = 2

	// HeightRatio derives the grid height from the surface width.
	HeightRatio = 0.5

	// DefaultDistance is the projection distance of a fresh 3D camera.
	DefaultDistance = 750
)

// Vec2 is a 2D point.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D point.
type Vec3 struct {
	X, Y, Z float64
}

func V2(x, y float64) Vec2    { return Vec2{X: x, Y: y} }
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// XY drops the Z component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Axis selects a 3D rotation axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

func sinCos(deg float64) (sin, cos float64) {
	return math.Sincos(deg * (math.Pi / 180))
}

// Rotate2D rotates p by deg degrees about pivot.
func Rotate2D(p Vec2, deg float64, pivot Vec2) Vec2 {
	sin, cos := sinCos(deg)
	d := p.Sub(pivot)
	return Vec2{
		X: cos*d.X - sin*d.Y + pivot.X,
		Y: sin*d.X + cos*d.Y + pivot.Y,
	}
}

// Rotate3D rotates p by deg degrees about one axis through pivot.
//
// X affects Y/Z, Y affects X/Z and Z affects X/Y. An unknown axis returns p.
func Rotate3D(p Vec3, axis Axis, deg float64, pivot Vec3) Vec3 {
	sin, cos := sinCos(deg)
	d := p.Sub(pivot)
	var r Vec3
	switch axis {
	case AxisX:
		r = Vec3{d.X, cos*d.Y - sin*d.Z, sin*d.Y + cos*d.Z}
	case AxisY:
		r = Vec3{cos*d.X + sin*d.Z, d.Y, -sin*d.X + cos*d.Z}
	case AxisZ:
		r = Vec3{cos*d.X - sin*d.Y, sin*d.X + cos*d.Y, d.Z}
	default:
		return p
	}
	return r.Add(pivot)
}

// RotateXYZ applies X, then Y, then Z rotations about the same pivot.
// Zero angles are skipped so an unrotated point is returned bit-exact.
func RotateXYZ(p Vec3, ax, ay, az float64, pivot Vec3) Vec3 {
	if ax != 0 {
		p = Rotate3D(p, AxisX, ax, pivot)
	}
	if ay != 0 {
		p = Rotate3D(p, AxisY, ay, pivot)
	}
	if az != 0 {
		p = Rotate3D(p, AxisZ, az, pivot)
	}
	return p
}

// Round rounds half up, so -0.5 becomes 0 and 2.5 becomes 3.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
