package scene

import (
	"math"

	"ief/engine/geom"
	"ief/engine/raster"
)

// vertices2D returns the screen-space outline of a 2D object, recomputing it
// only when the object is dirty. Polygons yield their corners; ellipses yield
// their plotted outline.
func vertices2D(o *Object) []geom.Vec2 {
	if !o.dirty {
		return o.verts
	}
	pos := o.pos.XY()
	verts := o.verts[:0]
	switch sh := o.shape.(type) {
	case Square:
		verts = box(verts, pos, sh.Length/2, sh.Length/2)
	case Rectangle:
		verts = box(verts, pos, sh.Width/2, sh.Height/2)
	case Triangle:
		h := sh.Length * math.Sqrt(3) / 2
		verts = append(verts,
			geom.V2(pos.X, pos.Y-(h*2/3)/geom.AspectRatio),
			geom.V2(pos.X-sh.Length/2, pos.Y+(h/3)/geom.AspectRatio),
			geom.V2(pos.X+sh.Length/2, pos.Y+(h/3)/geom.AspectRatio),
		)
	case Ellipse:
		verts = raster.EllipsePoints(verts, pos, sh.RadiusA, sh.RadiusB)
	}
	if _, ellipse := o.shape.(Ellipse); !ellipse && o.angle != 0 {
		rotateAspect(verts, o.angle, pos)
	}
	o.verts = verts
	o.dirty = false
	o.revision++
	return verts
}

func box(dst []geom.Vec2, c geom.Vec2, halfW, halfH float64) []geom.Vec2 {
	dy := halfH / geom.AspectRatio
	return append(dst,
		geom.V2(c.X-halfW, c.Y-dy),
		geom.V2(c.X+halfW, c.Y-dy),
		geom.V2(c.X+halfW, c.Y+dy),
		geom.V2(c.X-halfW, c.Y+dy),
	)
}

// rotateAspect rotates aspect-compressed vertices in place. Y is stretched back
// to square units, rotated about the stretched pivot, then compressed again.
func rotateAspect(verts []geom.Vec2, deg float64, pivot geom.Vec2) {
	p := geom.V2(pivot.X, pivot.Y*geom.AspectRatio)
	for i, v := range verts {
		r := geom.Rotate2D(geom.V2(v.X, v.Y*geom.AspectRatio), deg, p)
		verts[i] = geom.V2(r.X, r.Y/geom.AspectRatio)
	}
}

var cubeModel = [8]geom.Vec3{
	{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
}

// worldVertices returns the world-space corners of a cube, rotated about its
// centre by AngleX, AngleY, AngleZ in that order and translated to its position.
func worldVertices(o *Object, c Cube) []geom.Vec3 {
	if !o.dirty && len(o.world) == len(cubeModel) {
		return o.world
	}
	half := c.Length / 2
	var pivot geom.Vec3
	world := o.world[:0]
	for _, m := range cubeModel {
		v := geom.V3(m.X*half, m.Y*half, m.Z*half)
		v = geom.RotateXYZ(v, c.AngleX, c.AngleY, c.AngleZ, pivot)
		world = append(world, v.Add(o.pos))
	}
	o.world = world
	o.dirty = false
	o.revision++
	return world
}
