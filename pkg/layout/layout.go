// Package layout packs primitive-space links onto a cutting sheet.
//
// Packing is a shelf heuristic: links are placed left to right in
// configuration order, rows grow downward (negative y) and a row ends
// once the cursor reaches the sheet width. Pack is a pure fold that
// returns a Plan; Commit writes the plan's transforms into the links.
package layout

import (
	"fmt"
	"math"

	"github.com/chazu/linkfab/pkg/geom"
	"github.com/chazu/linkfab/pkg/linkage"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options controls sheet packing. Units are document units.
type Options struct {
	SheetWidth  float64 // cursor limit that triggers a new row
	Padding     float64 // gap around every link
	SheetMargin float64 // left margin of every row after the first
}

// DefaultOptions returns a 1000 wide sheet with padding 5 and margin 10.
func DefaultOptions() Options {
	return Options{SheetWidth: 1000, Padding: 5, SheetMargin: 10}
}

// Sizer reports a link's primitive-space bounding box size.
type Sizer interface {
	PrimitiveSize(l *linkage.Link) r2.Vec
}

var _ Sizer = (*linkage.Shaper)(nil)

// Placement is where one link goes on the sheet.
type Placement struct {
	Link      *linkage.Link
	Size      r2.Vec     // primitive bounding box width and height
	Center    r2.Vec     // center of the placed bounding box
	Row       int        // zero-based shelf index
	Transform *mat.Dense // translation from primitive to fabrication space
}

// Box returns the placed bounding box.
func (p Placement) Box() r2.Box {
	half := r2.Scale(0.5, p.Size)
	return r2.Box{Min: r2.Sub(p.Center, half), Max: r2.Add(p.Center, half)}
}

// Plan is the result of packing, one placement per link in order.
type Plan struct {
	Placements []Placement
	Rows       int
}

// Pack places links in order. It does not modify the links.
func Pack(sizer Sizer, links []*linkage.Link, opts Options) *Plan {
	plan := &Plan{Placements: make([]Placement, 0, len(links))}

	var x, y, rowHeight float64
	row := 0
	for _, l := range links {
		size := sizer.PrimitiveSize(l)
		center := r2.Vec{
			X: x + opts.Padding + size.X/2,
			Y: y - opts.Padding - size.Y/2,
		}
		rowHeight = math.Max(rowHeight, size.Y+opts.Padding)
		x += size.X + opts.Padding

		plan.Placements = append(plan.Placements, Placement{
			Link:      l,
			Size:      size,
			Center:    center,
			Row:       row,
			Transform: geom.Translation(center.X, center.Y, 0).Matrix(),
		})

		if x >= opts.SheetWidth {
			x = opts.SheetMargin - opts.Padding
			y -= rowHeight
			rowHeight = 0
			row++
		}
	}
	if len(plan.Placements) > 0 {
		plan.Rows = plan.Placements[len(plan.Placements)-1].Row + 1
	}
	return plan
}

// Commit sets every placed link's fabrication transform.
func (p *Plan) Commit() error {
	for _, pl := range p.Placements {
		if err := pl.Link.SetFabricationTransform(pl.Transform); err != nil {
			return fmt.Errorf("commit placement of %s: %w", pl.Link.ID(), err)
		}
	}
	return nil
}

// Bounds returns the union of all placed bounding boxes. An empty plan
// has a zero box.
func (p *Plan) Bounds() r2.Box {
	if len(p.Placements) == 0 {
		return r2.Box{}
	}
	b := p.Placements[0].Box()
	for _, pl := range p.Placements[1:] {
		b = geom.UnionBounds(b, pl.Box())
	}
	return b
}

// Layout packs the configuration's links and commits the result.
func Layout(sizer Sizer, cfg *linkage.Configuration, opts Options) (*Plan, error) {
	plan := Pack(sizer, cfg.Links, opts)
	if err := plan.Commit(); err != nil {
		return nil, err
	}
	return plan, nil
}
