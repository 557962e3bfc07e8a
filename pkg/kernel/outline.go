package kernel

import "gonum.org/v1/gonum/spatial/r2"

// Outline is the contour set of a shape, suitable for drawing or
// cutting. Outer boundaries and holes are both closed contours; an
// even-odd fill rule distinguishes them.
type Outline struct {
	Contours [][]r2.Vec `json:"contours"`
	Name     string     `json:"name"` // which link this came from
}

// ContourCount returns the number of closed contours.
func (o *Outline) ContourCount() int {
	return len(o.Contours)
}

// VertexCount returns the total number of vertices across contours.
func (o *Outline) VertexCount() int {
	n := 0
	for _, c := range o.Contours {
		n += len(c)
	}
	return n
}

// IsEmpty returns true if the outline has no geometry.
func (o *Outline) IsEmpty() bool {
	return o.VertexCount() == 0
}
