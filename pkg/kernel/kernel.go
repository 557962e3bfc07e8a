// Package kernel defines the abstract planar geometry kernel interface.
// Implementations (polyclip) provide buffering, boolean operations and
// affine application behind this interface. The kernel abstraction
// allows swapping backends without changing the linkage model.
package kernel

import (
	"github.com/chazu/linkfab/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// Shape is an opaque handle to a kernel polygon (possibly with holes).
// Implementations wrap their internal representation.
type Shape interface {
	geom.Bounded

	// Vertices returns every vertex of every contour.
	Vertices() []r2.Vec
}

// Kernel is the abstract planar geometry kernel interface.
type Kernel interface {
	// Primitives
	Capsule(a, b r2.Vec, radius float64) Shape // segment buffered by radius
	Disc(center r2.Vec, radius float64) Shape

	// Boolean operations
	Union(a, b Shape) Shape
	Difference(a, b Shape) Shape

	// Transforms
	Transform(s Shape, a geom.Affine) Shape

	// Queries
	MinimumRotatedRectangle(s Shape) [4]r2.Vec

	// Drawing output
	Outline(s Shape) *Outline
}
