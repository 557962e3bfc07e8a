package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// originKind selects how an Origin is resolved against a geometry.
type originKind int

const (
	originCenter originKind = iota // bounding box center
	originCentroid
	originPoint
)

// Origin is the fixed point of a rotation or scale.
type Origin struct {
	kind  originKind
	point r2.Vec
}

var (
	// OriginCenter resolves to the center of the geometry's bounding box.
	OriginCenter = Origin{kind: originCenter}
	// OriginCentroid resolves to the geometry's centroid.
	OriginCentroid = Origin{kind: originCentroid}
)

// OriginAt returns an Origin fixed at p.
func OriginAt(p r2.Vec) Origin {
	return Origin{kind: originPoint, point: p}
}

// Resolve returns the coordinates of o for geometry g.
func (o Origin) Resolve(g Bounded) r2.Vec {
	switch o.kind {
	case originCentroid:
		return g.Centroid()
	case originPoint:
		return o.point
	default:
		return BoundsCenter(g.Bounds())
	}
}

// snapEpsilon flushes trigonometric noise so that quarter turns produce
// exact zeros.
const snapEpsilon = 2.5e-16

// RotateMatrix returns the transform rotating g by angle degrees about
// origin. Positive angles are counter-clockwise. The rotation is
//
//	/ cos -sin xoff \
//	| sin  cos yoff |
//	\  0    0    1  /
//
// with xoff = x0 - x0*cos + y0*sin and yoff = y0 - x0*sin - y0*cos.
func RotateMatrix(g Bounded, angle float64, origin Origin) Affine {
	if g.IsEmpty() {
		return IdentityAffine
	}
	rad := angle * math.Pi / 180
	cosp, sinp := math.Cos(rad), math.Sin(rad)
	if math.Abs(cosp) < snapEpsilon {
		cosp = 0
	}
	if math.Abs(sinp) < snapEpsilon {
		sinp = 0
	}
	o := origin.Resolve(g)
	return Affine{
		cosp, -sinp, 0,
		sinp, cosp, 0,
		0, 0, 1,
		o.X - o.X*cosp + o.Y*sinp, o.Y - o.X*sinp - o.Y*cosp, 0,
	}
}

// TranslateMatrix returns the transform shifting g by the offsets.
func TranslateMatrix(g Bounded, xoff, yoff, zoff float64) Affine {
	if g.IsEmpty() {
		return IdentityAffine
	}
	return Affine{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		xoff, yoff, zoff,
	}
}

// ScaleMatrix returns the transform scaling g by the factors about
// origin. Negative factors mirror. Planar geometry has z0 = 0.
func ScaleMatrix(g Bounded, xfact, yfact, zfact float64, origin Origin) Affine {
	if g.IsEmpty() {
		return IdentityAffine
	}
	o := origin.Resolve(g)
	return Affine{
		xfact, 0, 0,
		0, yfact, 0,
		0, 0, zfact,
		o.X - o.X*xfact, o.Y - o.Y*yfact, 0,
	}
}
