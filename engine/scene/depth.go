package scene

import (
	"sort"

	"ief/engine/geom"
)

var cubeFaces = [6][4]int{
	{0, 1, 2, 3},
	{4, 5, 6, 7},
	{0, 3, 7, 4},
	{1, 2, 6, 5},
	{0, 1, 5, 4},
	{3, 2, 6, 7},
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// projected is a cube corner after the camera transform. Screen is meaningful
// only when OK is set.
type projected struct {
	Screen geom.Vec2
	Depth  float64
	OK     bool
}

// projectCorners runs the camera transform and projection once per corner.
// Screen Y is divided by the aspect ratio before the centre shift.
func projectCorners(dst *[8]projected, world []geom.Vec3, cam geom.Camera3D, w, h int) {
	for i := range dst {
		if i >= len(world) {
			dst[i] = projected{}
			continue
		}
		t := geom.CameraTransform(world[i], cam)
		p, ok := geom.Project(t, cam.Distance)
		if ok {
			p = geom.ToScreen(geom.V2(p.X, p.Y/geom.AspectRatio), w, h)
		}
		dst[i] = projected{Screen: p, Depth: t.Z, OK: ok}
	}
}

// face is a drawable quad with its mean camera-space depth.
type face struct {
	depth float64
	pts   [4]geom.Vec2
}

// visibleFaces appends every face whose corners are all in front of the camera.
func visibleFaces(dst []face, corners *[8]projected) []face {
next:
	for _, idx := range cubeFaces {
		var f face
		var total float64
		for j, i := range idx {
			c := corners[i]
			if !c.OK {
				continue next
			}
			f.pts[j] = c.Screen
			total += c.Depth
		}
		f.depth = total / float64(len(idx))
		dst = append(dst, f)
	}
	return dst
}

// paintOrder sorts faces farthest first. Equal depths keep their input order.
func paintOrder(faces []face) {
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].depth > faces[j].depth
	})
}
