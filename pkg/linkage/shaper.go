package linkage

import (
	"github.com/chazu/linkfab/pkg/geom"
	"github.com/chazu/linkfab/pkg/kernel"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Default shape radii in document units (millimeters).
const (
	DefaultLinkageRadius = 7.5
	DefaultJointRadius   = 1.0
)

var (
	xAxis    = r2.Vec{X: 1}
	negXAxis = r2.Vec{X: -1}
)

// Shaper builds link shapes with a geometry kernel and derives the
// transforms between coordinate spaces.
type Shaper struct {
	Kernel        kernel.Kernel
	LinkageRadius float64 // half-width of the link body
	JointRadius   float64 // radius of the hole at each hub
}

// NewShaper returns a Shaper with the default radii.
func NewShaper(k kernel.Kernel) *Shaper {
	return &Shaper{
		Kernel:        k,
		LinkageRadius: DefaultLinkageRadius,
		JointRadius:   DefaultJointRadius,
	}
}

// RawShape returns the link body in assembled space: the hub-to-hub
// segment buffered by LinkageRadius with a JointRadius hole at each hub.
func (s *Shaper) RawShape(l *Link) kernel.Shape {
	a, b := l.HubA.Position, l.HubB.Position
	shape := s.Kernel.Capsule(a, b, s.LinkageRadius)
	shape = s.Kernel.Difference(shape, s.Kernel.Disc(a, s.JointRadius))
	if !geom.PointsEqual(a, b) {
		shape = s.Kernel.Difference(shape, s.Kernel.Disc(b, s.JointRadius))
	}
	return shape
}

// PrimitiveTransform derives the matrix taking the link from assembled
// to primitive space. It is the product orient · rotate · center · mirror:
//
//   - mirror flips y about the origin;
//   - center moves the bounding box center to the origin;
//   - rotate aligns the minimum rotated rectangle with the x axis;
//   - orient turns the shape a quarter so that it is taller than wide.
func (s *Shaper) PrimitiveTransform(l *Link) *mat.Dense {
	k := s.Kernel
	shape := s.RawShape(l)

	mirror := geom.ScaleMatrix(shape, 1, -1, 1, geom.OriginAt(r2.Vec{}))
	shape = k.Transform(shape, mirror)

	c := geom.BoundsCenter(shape.Bounds())
	center := geom.TranslateMatrix(shape, -c.X, -c.Y, 0)
	shape = k.Transform(shape, center)

	rotate := geom.RotateMatrix(shape, axisAngle(k.MinimumRotatedRectangle(shape)), geom.OriginCenter)
	shape = k.Transform(shape, rotate)

	orient := geom.IdentityAffine
	if size := geom.BoundsSize(shape.Bounds()); size.X > size.Y {
		orient = geom.RotateMatrix(shape, 90, geom.OriginCenter)
	}

	return geom.Compose(orient.Matrix(), rotate.Matrix(), center.Matrix(), mirror.Matrix())
}

// axisAngle returns the rotation in degrees that brings the first edge
// of rect parallel to the x axis by the smaller of the two turns.
func axisAngle(rect [4]r2.Vec) float64 {
	ref := r2.Sub(rect[1], rect[0])
	flipped := r2.Vec{X: ref.X, Y: -ref.Y}
	angle := geom.AngleBetween(flipped, xAxis)
	if angle > 90 {
		angle = geom.AngleBetween(flipped, negXAxis)
	}
	if ref.X*ref.Y > 0 {
		angle = -angle
	}
	return angle
}

// Transform returns the matrix taking l from assembled space to space.
func (s *Shaper) Transform(l *Link, space Space) *mat.Dense {
	switch space {
	case Primitive:
		return s.PrimitiveTransform(l)
	case Fabrication:
		return geom.Compose(l.FabricationTransform(), s.PrimitiveTransform(l))
	default:
		return geom.Identity()
	}
}

// ShapeIn returns the link shape in the given space.
func (s *Shaper) ShapeIn(l *Link, space Space) kernel.Shape {
	shape := s.RawShape(l)
	if space == Assembled {
		return shape
	}
	return s.Kernel.Transform(shape, geom.MustAffine(s.Transform(l, space)))
}

// HubAPositionIn returns the position of the link's first hub in space.
func (s *Shaper) HubAPositionIn(l *Link, space Space) r2.Vec {
	return s.positionIn(l, l.HubA.Position, space)
}

// HubBPositionIn returns the position of the link's second hub in space.
func (s *Shaper) HubBPositionIn(l *Link, space Space) r2.Vec {
	return s.positionIn(l, l.HubB.Position, space)
}

func (s *Shaper) positionIn(l *Link, p r2.Vec, space Space) r2.Vec {
	if space == Assembled {
		return p
	}
	return geom.MustAffine(s.Transform(l, space)).Apply(p)
}

// PrimitiveSize returns the width and height of the link's primitive
// space bounding box.
func (s *Shaper) PrimitiveSize(l *Link) r2.Vec {
	return geom.BoundsSize(s.ShapeIn(l, Primitive).Bounds())
}
