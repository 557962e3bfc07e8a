// Package render turns a linkage configuration into a vector drawing.
//
// Render builds an in-memory Drawing (one path and two hub labels per
// link) in a chosen coordinate space. Style applies the cosmetic
// attributes afterwards, and WriteSVG / WriteDXF serialize the result.
package render

import (
	"github.com/chazu/linkfab/pkg/geom"
	"github.com/chazu/linkfab/pkg/kernel"
	"github.com/chazu/linkfab/pkg/linkage"
	"gonum.org/v1/gonum/spatial/r2"
)

// Attrs holds presentation attributes of a drawing element.
type Attrs map[string]string

// Path is the outline of one link. Contours are closed; holes are drawn
// with the even-odd rule.
type Path struct {
	LinkID   string
	Contours [][]r2.Vec
	Attrs    Attrs
}

// Bounds returns the bounding box of every contour.
func (p Path) Bounds() r2.Box {
	var pts []r2.Vec
	for _, c := range p.Contours {
		pts = append(pts, c...)
	}
	return geom.BoundsOf(pts)
}

// Label is a hub letter anchored at the hub position.
type Label struct {
	Text  string
	At    r2.Vec
	Attrs Attrs
}

// Drawing is the rendered form of a configuration in one space.
type Drawing struct {
	Space   linkage.Space
	Paths   []Path
	Labels  []Label
	ViewBox r2.Box
	Unit    string
}

// Width returns the viewport width.
func (d *Drawing) Width() float64 { return d.ViewBox.Max.X - d.ViewBox.Min.X }

// Height returns the viewport height.
func (d *Drawing) Height() float64 { return d.ViewBox.Max.Y - d.ViewBox.Min.Y }

// IsEmpty reports whether the drawing has no paths.
func (d *Drawing) IsEmpty() bool { return len(d.Paths) == 0 }

// Render draws every link of cfg in space, in link order. The viewport
// is the bounding box of the union of all link shapes. An empty
// configuration gives an empty drawing with a zero viewport.
func Render(s *linkage.Shaper, cfg *linkage.Configuration, space linkage.Space) *Drawing {
	d := &Drawing{Space: space, Unit: "mm"}

	var union kernel.Shape
	for _, l := range cfg.Links {
		shape := s.ShapeIn(l, space)
		if union == nil {
			union = shape
		} else {
			union = s.Kernel.Union(union, shape)
		}

		outline := s.Kernel.Outline(shape)
		d.Paths = append(d.Paths, Path{
			LinkID:   l.ID(),
			Contours: outline.Contours,
			Attrs:    Attrs{"data-link": l.ID()},
		})
		d.Labels = append(d.Labels,
			Label{Text: l.HubA.Label(), At: s.HubAPositionIn(l, space), Attrs: Attrs{}},
			Label{Text: l.HubB.Label(), At: s.HubBPositionIn(l, space), Attrs: Attrs{}},
		)
	}
	if union != nil && !union.IsEmpty() {
		d.ViewBox = union.Bounds()
	}
	return d
}
