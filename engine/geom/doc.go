// Package geom is the geometry kernel of the renderer.
//
// Pipeline (fixed):
//
//	model → world → camera → projection → screen.
//
// Rotations are planar rotations about an explicit pivot, in degrees. 3D rotations
// are applied one axis at a time in X → Y → Z order, each step fed the previous
// step's output and rotating about the same pivot. Projection is a pinhole
// perspective divide; points at or behind the camera plane are undrawable.
package geom
