// Package scene owns the objects and cameras of a rendering context and turns
// them into raster calls.
//
// Objects live in two independent identity-indexed sets, one per dimension, and
// are addressed by generational handles. Each object caches its last computed
// vertices behind a dirty flag: mutations set it, the next draw recomputes once
// and clears it. 2D caches are screen-space and camera-agnostic. Cube caches are
// world-space; the camera transform and projection run every frame.
//
// Cube faces are culled when any corner is at or behind the camera plane and
// the rest are filled farthest first (painter's algorithm). Edges are drawn on
// top unconditionally.
package scene
