// Package geom holds the planar geometry helpers shared by the linkage
// model, the packer and the kernels: approximate point comparison,
// bounding box queries, vector angles, convex hulls and the affine
// transform representations used throughout linkfab.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Tolerances used by PointsEqual. RelTol matches the usual isclose
// default; AbsTol lets coordinates near zero compare equal.
const (
	RelTol = 1e-9
	AbsTol = 1e-9
)

// Segment is a raw line segment in assembled space, as produced by a
// source parser.
type Segment struct {
	A, B r2.Vec
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.B, s.A))
}

// Bounded is implemented by geometries that can resolve a transform
// origin: their axis-aligned bounds and their centroid.
type Bounded interface {
	Bounds() r2.Box
	Centroid() r2.Vec
	IsEmpty() bool
}

// IsClose reports whether a and b are equal within RelTol or AbsTol.
func IsClose(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= math.Max(RelTol*math.Max(math.Abs(a), math.Abs(b)), AbsTol)
}

// PointsEqual reports whether two points coincide within tolerance.
func PointsEqual(a, b r2.Vec) bool {
	return IsClose(a.X, b.X) && IsClose(a.Y, b.Y)
}

// BoundsCenter returns the center of an axis-aligned bounding box.
func BoundsCenter(b r2.Box) r2.Vec {
	size := BoundsSize(b)
	return r2.Vec{X: b.Min.X + size.X/2, Y: b.Min.Y + size.Y/2}
}

// BoundsSize returns the width (X) and height (Y) of a bounding box.
func BoundsSize(b r2.Box) r2.Vec {
	return r2.Sub(b.Max, b.Min)
}

// BoundsOf returns the envelope of a set of points. An empty set yields
// the zero box.
func BoundsOf(points []r2.Vec) r2.Box {
	if len(points) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// UnionBounds returns the smallest box containing both a and b.
func UnionBounds(a, b r2.Box) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y)},
		Max: r2.Vec{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y)},
	}
}

// BoundsOverlap reports whether the interiors of two boxes intersect.
// Boxes that only touch along an edge do not overlap.
func BoundsOverlap(a, b r2.Box) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}

// AngleBetween returns the angle between u and v in degrees, in the
// range [0, 180]. A zero vector has no direction and yields 0.
func AngleBetween(u, v r2.Vec) float64 {
	nu, nv := r2.Norm(u), r2.Norm(v)
	if nu == 0 || nv == 0 {
		return 0
	}
	cos := r2.Dot(u, v) / (nu * nv)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
