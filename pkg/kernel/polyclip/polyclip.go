// Package polyclip implements the kernel.Kernel interface using the
// github.com/akavel/polyclip-go polygon clipping library.
package polyclip

import (
	"math"

	clip "github.com/akavel/polyclip-go"
	"github.com/chazu/linkfab/pkg/geom"
	"github.com/chazu/linkfab/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r2"
)

// Compile-time interface check.
var _ kernel.Kernel = (*PolyclipKernel)(nil)

// DefaultQuarterSegments controls how finely arcs are approximated:
// segments per quarter circle.
const DefaultQuarterSegments = 16

// polygon wraps a clip.Polygon to implement kernel.Shape.
type polygon struct {
	p clip.Polygon
}

// Vertices returns every vertex of every contour.
func (s *polygon) Vertices() []r2.Vec {
	var out []r2.Vec
	for _, c := range s.p {
		for _, pt := range c {
			out = append(out, r2.Vec{X: pt.X, Y: pt.Y})
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box.
func (s *polygon) Bounds() r2.Box {
	return geom.BoundsOf(s.Vertices())
}

// IsEmpty reports whether the polygon has no vertices.
func (s *polygon) IsEmpty() bool {
	for _, c := range s.p {
		if len(c) > 0 {
			return false
		}
	}
	return true
}

// Centroid returns the area-weighted centroid. Contours nested inside an
// odd number of other contours are holes and count negatively.
func (s *polygon) Centroid() r2.Vec {
	var area, cx, cy float64
	for i, c := range s.p {
		a, ctr := contourAreaCentroid(c)
		if a == 0 {
			continue
		}
		if s.isHole(i) {
			a = -a
		}
		area += a
		cx += a * ctr.X
		cy += a * ctr.Y
	}
	if area == 0 {
		return geom.BoundsCenter(s.Bounds())
	}
	return r2.Vec{X: cx / area, Y: cy / area}
}

func (s *polygon) isHole(i int) bool {
	if len(s.p[i]) == 0 {
		return false
	}
	probe := s.p[i][0]
	depth := 0
	for j, c := range s.p {
		if j != i && c.Contains(probe) {
			depth++
		}
	}
	return depth%2 == 1
}

// contourAreaCentroid returns the unsigned area and centroid of a simple
// closed contour.
func contourAreaCentroid(c clip.Contour) (float64, r2.Vec) {
	var a2, cx, cy float64
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		cross := p.X*q.Y - q.X*p.Y
		a2 += cross
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	if a2 == 0 {
		return 0, r2.Vec{}
	}
	return math.Abs(a2) / 2, r2.Vec{X: cx / (3 * a2), Y: cy / (3 * a2)}
}

// PolyclipKernel implements kernel.Kernel using polyclip.
type PolyclipKernel struct {
	quarterSegments int
}

// New returns a new PolyclipKernel using DefaultQuarterSegments.
func New() *PolyclipKernel {
	return &PolyclipKernel{quarterSegments: DefaultQuarterSegments}
}

// NewWithResolution returns a PolyclipKernel approximating arcs with n
// segments per quarter circle. Values below 1 are raised to 1.
func NewWithResolution(n int) *PolyclipKernel {
	if n < 1 {
		n = 1
	}
	return &PolyclipKernel{quarterSegments: n}
}

// unwrap extracts the underlying clip.Polygon from a kernel.Shape.
func unwrap(s kernel.Shape) clip.Polygon {
	return s.(*polygon).p
}

// wrap creates a kernel.Shape from a clip.Polygon.
func wrap(p clip.Polygon) kernel.Shape {
	return &polygon{p: p}
}

// arc appends the points of a circular arc around c starting at angle
// from (radians) and sweeping sweep radians counter-clockwise. Both end
// points are included.
func (k *PolyclipKernel) arc(c clip.Contour, center r2.Vec, radius, from, sweep float64) clip.Contour {
	steps := int(math.Round(sweep / (math.Pi / 2) * float64(k.quarterSegments)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		a := from + sweep*float64(i)/float64(steps)
		c = append(c, clip.Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return c
}

// Capsule returns the segment a-b buffered by radius: two half discs
// joined by straight sides. A zero-length segment yields a disc.
func (k *PolyclipKernel) Capsule(a, b r2.Vec, radius float64) kernel.Shape {
	d := r2.Sub(b, a)
	if r2.Norm(d) == 0 {
		return k.Disc(a, radius)
	}
	u := r2.Unit(d)
	normal := math.Atan2(u.X, -u.Y) // direction of u rotated a quarter turn

	// Counter-clockwise: around a from +normal through -u to -normal,
	// then around b from -normal through +u back to +normal.
	var c clip.Contour
	c = k.arc(c, a, radius, normal, math.Pi)
	c = k.arc(c, b, radius, normal+math.Pi, math.Pi)
	return wrap(clip.Polygon{c})
}

// Disc returns a regular polygon approximating a circle.
func (k *PolyclipKernel) Disc(center r2.Vec, radius float64) kernel.Shape {
	n := 4 * k.quarterSegments
	c := make(clip.Contour, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		c = append(c, clip.Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return wrap(clip.Polygon{c})
}

// Union returns the union of two shapes.
func (k *PolyclipKernel) Union(a, b kernel.Shape) kernel.Shape {
	if a.IsEmpty() {
		return wrap(clone(unwrap(b)))
	}
	if b.IsEmpty() {
		return wrap(clone(unwrap(a)))
	}
	return wrap(unwrap(a).Construct(clip.UNION, unwrap(b)))
}

// Difference returns the difference a - b.
func (k *PolyclipKernel) Difference(a, b kernel.Shape) kernel.Shape {
	if a.IsEmpty() || b.IsEmpty() {
		return wrap(clone(unwrap(a)))
	}
	return wrap(unwrap(a).Construct(clip.DIFFERENCE, unwrap(b)))
}

// Transform applies an affine transform to every vertex.
func (k *PolyclipKernel) Transform(s kernel.Shape, a geom.Affine) kernel.Shape {
	src := unwrap(s)
	out := make(clip.Polygon, len(src))
	for i, c := range src {
		tc := make(clip.Contour, len(c))
		for j, pt := range c {
			p := a.Apply(r2.Vec{X: pt.X, Y: pt.Y})
			tc[j] = clip.Point{X: p.X, Y: p.Y}
		}
		out[i] = tc
	}
	return wrap(out)
}

// MinimumRotatedRectangle returns the minimum-area enclosing rectangle.
func (k *PolyclipKernel) MinimumRotatedRectangle(s kernel.Shape) [4]r2.Vec {
	return geom.MinimumRotatedRectangle(s.Vertices())
}

// Outline converts a shape to drawable contours.
func (k *PolyclipKernel) Outline(s kernel.Shape) *kernel.Outline {
	src := unwrap(s)
	o := &kernel.Outline{Contours: make([][]r2.Vec, 0, len(src))}
	for _, c := range src {
		if len(c) == 0 {
			continue
		}
		pts := make([]r2.Vec, len(c))
		for i, pt := range c {
			pts[i] = r2.Vec{X: pt.X, Y: pt.Y}
		}
		o.Contours = append(o.Contours, pts)
	}
	return o
}

func clone(p clip.Polygon) clip.Polygon {
	out := make(clip.Polygon, len(p))
	for i, c := range p {
		out[i] = append(clip.Contour(nil), c...)
	}
	return out
}
