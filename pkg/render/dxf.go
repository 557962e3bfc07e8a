package render

import (
	"fmt"

	sdfxrender "github.com/deadsy/sdfx/render"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// WriteDXF writes every path contour as closed line loops to a DXF file
// at path. Labels are not exported.
func (d *Drawing) WriteDXF(path string) error {
	out := sdfxrender.NewDXF(path)
	for _, p := range d.Paths {
		for _, c := range p.Contours {
			for i := range c {
				a, b := c[i], c[(i+1)%len(c)]
				out.Line(v2.Vec{X: a.X, Y: a.Y}, v2.Vec{X: b.X, Y: b.Y})
			}
		}
	}
	if err := out.Save(); err != nil {
		return fmt.Errorf("write dxf %s: %w", path, err)
	}
	return nil
}
