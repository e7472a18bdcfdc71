package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func nearV2(a, b Vec2) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func nearV3(a, b Vec3) bool { return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) }

func TestRotate2DRoundTrip(t *testing.T) {
	pivot := V2(3, -2)
	p := V2(10, 7)
	for deg := -720.0; deg <= 720; deg += 13.5 {
		got := Rotate2D(Rotate2D(p, deg, pivot), -deg, pivot)
		if !nearV2(got, p) {
			t.Fatalf("Rotate2D(%v) round trip = %v, want %v", deg, got, p)
		}
	}
}

func TestRotate2DQuarterTurn(t *testing.T) {
	got := Rotate2D(V2(2, 1), 90, V2(1, 1))
	if !nearV2(got, V2(1, 2)) {
		t.Fatalf("Rotate2D quarter turn = %v, want (1,2)", got)
	}
}

func TestRotate3DRoundTrip(t *testing.T) {
	pivot := V3(1, 2, 3)
	p := V3(-4, 5, 9)
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for deg := -360.0; deg <= 360; deg += 17 {
			got := Rotate3D(Rotate3D(p, axis, deg, pivot), axis, -deg, pivot)
			if !nearV3(got, p) {
				t.Fatalf("Rotate3D(%v, %v) round trip = %v, want %v", axis, deg, got, p)
			}
		}
	}
}

func TestRotate3DAxes(t *testing.T) {
	var origin Vec3
	tcs := []struct {
		name string
		axis Axis
		in   Vec3
		want Vec3
	}{
		{name: "x", axis: AxisX, in: V3(5, 1, 0), want: V3(5, 0, 1)},
		{name: "y", axis: AxisY, in: V3(1, 5, 0), want: V3(0, 5, -1)},
		{name: "z", axis: AxisZ, in: V3(1, 0, 5), want: V3(0, 1, 5)},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := Rotate3D(tc.in, tc.axis, 90, origin)
			if !nearV3(got, tc.want) {
				t.Fatalf("Rotate3D(%v, 90) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRotateXYZOrder(t *testing.T) {
	var origin Vec3
	p := V3(1, 2, 3)
	want := Rotate3D(Rotate3D(Rotate3D(p, AxisX, 30, origin), AxisY, 45, origin), AxisZ, 60, origin)
	got := RotateXYZ(p, 30, 45, 60, origin)
	if !nearV3(got, want) {
		t.Fatalf("RotateXYZ = %v, want %v", got, want)
	}
	if RotateXYZ(p, 0, 0, 0, origin) != p {
		t.Fatalf("RotateXYZ with zero angles changed the point")
	}
}

func TestProjectBehindCamera(t *testing.T) {
	for _, z := range []float64{0, -0.0001, -1, -1e9, math.Copysign(0, -1), math.NaN()} {
		if s, ok := Project(V3(1, 1, z), DefaultDistance); ok {
			t.Fatalf("Project(z=%v) = %v, want undrawable", z, s)
		}
	}
}

func TestProjectDivide(t *testing.T) {
	s, ok := Project(V3(1.5, -1.5, 38.5), 750)
	if !ok {
		t.Fatalf("Project() ok = false")
	}
	want := 1.5 * 750 / 38.5
	if !near(s.X, want) || !near(s.Y, -want) {
		t.Fatalf("Project() = %v, want (%v,%v)", s, want, -want)
	}
}

func TestCameraTransformTranslatesAndRotates(t *testing.T) {
	cam := DefaultCamera3D()
	cam.Position = V3(0, 6, 0)
	got := CameraTransform(V3(0, 6, 10), cam)
	if !nearV3(got, V3(0, 0, 10)) {
		t.Fatalf("CameraTransform translate = %v", got)
	}

	// A camera turned +90° about Y sees a point on world +X straight ahead.
	cam = DefaultCamera3D()
	cam.AngleY = 90
	got = CameraTransform(V3(10, 0, 0), cam)
	if !nearV3(got, V3(0, 0, 10)) {
		t.Fatalf("CameraTransform rotate = %v, want (0,0,10)", got)
	}
}

func TestGridSize(t *testing.T) {
	tcs := []struct {
		cols, rows int
		w, h       int
	}{
		{cols: 220, rows: 0, w: 220, h: 110},
		{cols: 81, rows: 100, w: 81, h: 40},
		{cols: 200, rows: 50, w: 200, h: 50},
		{cols: 0, rows: 50, w: 0, h: 0},
	}
	for _, tc := range tcs {
		w, h := GridSize(tc.cols, tc.rows)
		if w != tc.w || h != tc.h {
			t.Fatalf("GridSize(%d,%d) = %d,%d; want %d,%d", tc.cols, tc.rows, w, h, tc.w, tc.h)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tcs := map[float64]int{-0.5: 0, 0.5: 1, 2.5: 3, -1.5: -1, -1.6: -2, 7.49: 7}
	for in, want := range tcs {
		if got := Round(in); got != want {
			t.Fatalf("Round(%v) = %d, want %d", in, got, want)
		}
	}
}
