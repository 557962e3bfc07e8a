package polyclip

import (
	"math"
	"testing"

	"github.com/chazu/linkfab/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-6

func boxNear(t *testing.T, name string, got, want r2.Box) {
	t.Helper()
	if math.Abs(got.Min.X-want.Min.X) > tol || math.Abs(got.Min.Y-want.Min.Y) > tol ||
		math.Abs(got.Max.X-want.Max.X) > tol || math.Abs(got.Max.Y-want.Max.Y) > tol {
		t.Errorf("%s bounds = %v, want %v", name, got, want)
	}
}

func TestCapsuleBounds(t *testing.T) {
	k := New()
	s := k.Capsule(r2.Vec{}, r2.Vec{X: 10}, 7.5)
	boxNear(t, "capsule", s.Bounds(), r2.Box{
		Min: r2.Vec{X: -7.5, Y: -7.5},
		Max: r2.Vec{X: 17.5, Y: 7.5},
	})
	// Two half discs of 2*16 segments each, end points included.
	if got := len(s.Vertices()); got != 66 {
		t.Errorf("capsule vertex count = %d, want 66", got)
	}
}

func TestCapsuleVerticalSegment(t *testing.T) {
	k := New()
	s := k.Capsule(r2.Vec{X: 10}, r2.Vec{X: 10, Y: 10}, 2)
	boxNear(t, "vertical capsule", s.Bounds(), r2.Box{
		Min: r2.Vec{X: 8, Y: -2},
		Max: r2.Vec{X: 12, Y: 12},
	})
}

func TestCapsuleZeroLengthIsDisc(t *testing.T) {
	k := New()
	s := k.Capsule(r2.Vec{X: 3, Y: 3}, r2.Vec{X: 3, Y: 3}, 1)
	boxNear(t, "degenerate capsule", s.Bounds(), r2.Box{
		Min: r2.Vec{X: 2, Y: 2},
		Max: r2.Vec{X: 4, Y: 4},
	})
	if got := len(s.Vertices()); got != 4*DefaultQuarterSegments {
		t.Errorf("disc vertex count = %d, want %d", got, 4*DefaultQuarterSegments)
	}
}

func TestDifferenceCutsHoles(t *testing.T) {
	k := New()
	body := k.Capsule(r2.Vec{}, r2.Vec{X: 10}, 7.5)
	s := k.Difference(body, k.Disc(r2.Vec{}, 1))
	s = k.Difference(s, k.Disc(r2.Vec{X: 10}, 1))

	o := k.Outline(s)
	if o.ContourCount() != 3 {
		t.Fatalf("expected outer boundary plus two holes, got %d contours", o.ContourCount())
	}
	// Interior holes do not change the envelope.
	boxNear(t, "holed capsule", s.Bounds(), body.Bounds())
}

func TestDifferenceWithEmpty(t *testing.T) {
	k := New()
	disc := k.Disc(r2.Vec{}, 1)
	empty := wrap(nil)
	if got := k.Difference(disc, empty); len(got.Vertices()) != len(disc.Vertices()) {
		t.Errorf("difference with empty changed the shape")
	}
	if got := k.Difference(empty, disc); !got.IsEmpty() {
		t.Errorf("empty minus disc should stay empty")
	}
}

func TestUnion(t *testing.T) {
	k := New()
	a := k.Disc(r2.Vec{}, 5)
	b := k.Disc(r2.Vec{X: 20}, 5)
	u := k.Union(a, b)
	boxNear(t, "union", u.Bounds(), r2.Box{
		Min: r2.Vec{X: -5, Y: -5},
		Max: r2.Vec{X: 25, Y: 5},
	})

	empty := wrap(nil)
	boxNear(t, "union with empty", k.Union(empty, a).Bounds(), a.Bounds())
}

func TestTransform(t *testing.T) {
	k := New()
	s := k.Disc(r2.Vec{}, 1)
	moved := k.Transform(s, geom.TranslateMatrix(s, 100, 200, 0))
	boxNear(t, "translated disc", moved.Bounds(), r2.Box{
		Min: r2.Vec{X: 99, Y: 199},
		Max: r2.Vec{X: 101, Y: 201},
	})
	// The source shape is not modified.
	boxNear(t, "source disc", s.Bounds(), r2.Box{
		Min: r2.Vec{X: -1, Y: -1},
		Max: r2.Vec{X: 1, Y: 1},
	})
}

func TestCentroid(t *testing.T) {
	k := New()
	s := k.Capsule(r2.Vec{X: 2, Y: 4}, r2.Vec{X: 12, Y: 4}, 3)
	c := s.Centroid()
	if math.Abs(c.X-7) > tol || math.Abs(c.Y-4) > tol {
		t.Errorf("capsule centroid = %v, want (7, 4)", c)
	}

	// A hole on one side pulls the centroid away from it.
	holed := k.Difference(s, k.Disc(r2.Vec{X: 2, Y: 4}, 1))
	if hc := holed.Centroid(); hc.X <= c.X {
		t.Errorf("centroid with hole at left = %v, want x > %f", hc, c.X)
	}
}

func TestMinimumRotatedRectangleFollowsSegment(t *testing.T) {
	k := New()
	s := k.Capsule(r2.Vec{}, r2.Vec{X: 30, Y: 30}, 2)
	rect := k.MinimumRotatedRectangle(s)
	edge := r2.Sub(rect[1], rect[0])
	angle := math.Mod(math.Atan2(edge.Y, edge.X)*180/math.Pi+360, 90)
	if math.Abs(angle-45) > 1e-6 {
		t.Errorf("rectangle edge at %f degrees (mod 90), want 45", angle)
	}
}

func TestOutlineSkipsEmptyContours(t *testing.T) {
	k := New()
	o := k.Outline(wrap(nil))
	if !o.IsEmpty() {
		t.Error("outline of empty shape should be empty")
	}
}

func TestNewWithResolution(t *testing.T) {
	k := NewWithResolution(0)
	if got := len(k.Disc(r2.Vec{}, 1).Vertices()); got != 4 {
		t.Errorf("coarsest disc vertex count = %d, want 4", got)
	}
}
