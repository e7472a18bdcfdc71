package geom

// Camera3D is a 3D viewpoint: position, three axis angles in degrees and the
// projection distance.
type Camera3D struct {
	Position Vec3
	AngleX   float64
	AngleY   float64
	AngleZ   float64
	Distance float64
}

// Camera2D mirrors Camera3D for the 2D scene. 2D shapes are drawn in screen
// space and currently ignore it.
type Camera2D struct {
	Position Vec2
	Angle    float64
	Distance float64
}

// DefaultCamera3D returns a camera at the origin looking down +Z.
func DefaultCamera3D() Camera3D {
	return Camera3D{Distance: DefaultDistance}
}

// DefaultCamera2D returns a camera at the origin.
func DefaultCamera2D() Camera2D {
	return Camera2D{}
}

// CameraTransform moves a world point into the camera's local frame: translate
// by the negative camera position, then rotate by the negated camera angles about
// the origin in X → Y → Z order.
func CameraTransform(p Vec3, cam Camera3D) Vec3 {
	t := p.Sub(cam.Position)
	var origin Vec3
	t = Rotate3D(t, AxisX, -cam.AngleX, origin)
	t = Rotate3D(t, AxisY, -cam.AngleY, origin)
	return Rotate3D(t, AxisZ, -cam.AngleZ, origin)
}

// Project applies the perspective divide to a camera-space point. ok is false
// when the point is at or behind the camera plane (z <= 0); callers must omit
// such points instead of substituting a coordinate.
func Project(p Vec3, distance float64) (s Vec2, ok bool) {
	if !(p.Z > 0) {
		return Vec2{}, false
	}
	return Vec2{
		X: distance * p.X / p.Z,
		Y: distance * p.Y / p.Z,
	}, true
}

// ToScreen shifts a projected point so the origin sits at the grid centre.
func ToScreen(p Vec2, width, height int) Vec2 {
	return Vec2{
		X: p.X + float64(width)/2,
		Y: p.Y + float64(height)/2,
	}
}

// GridSize derives the grid dimensions from a surface size. The height follows
// the width through HeightRatio and is capped by the available rows when known.
func GridSize(cols, rows int) (width, height int) {
	if cols <= 0 {
		return 0, 0
	}
	width = cols
	height = int(float64(cols) * HeightRatio)
	if rows > 0 && height > rows {
		height = rows
	}
	return width, height
}
