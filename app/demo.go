package app

import "sort"

// demos are built-in line scripts. 2D coordinates are grid cells; the default
// 80 column terminal gives an 80x40 grid.
var demos = map[string]string{
	"cube": `# spinning cube
create 3d cube myCube
color myCube bright_green
fill myCube
spin myCube 1 2 0
`,
	"wireframe": `# two outlined cubes circling through the camera plane
create 3d cube near
color near bright_cyan
fill near off
position near -4 0 30
spin near 0 1.5 0.5

create 3d cube far
color far bright_magenta
scale far 5
position far 6 -1 60
spin far 1 0 1
drift far 0 0 -0.05

create 3d point star1
position star1 -20 -10 100
create 3d point star2
color star2 yellow
position star2 25 8 120
`,
	"shapes": `# 2d primitives
scene 2d
create 2d square sq
position sq 15 10
scale sq 12
color sq red
fill sq
spin sq 2

create 2d triangle tri
position tri 40 12
scale tri 14
color tri yellow
spin tri -1

create 2d rectangle box
position box 64 10
scale box 10 6
color box bright_blue
fill box
rotate box 15

create 2d ellipse orb
position orb 40 30
scale orb 16 12
color orb bright_cyan
drift orb 0.05 0
`,
}

// Demos lists the built-in scene names.
func Demos() []string {
	out := make([]string, 0, len(demos))
	for name := range demos {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
