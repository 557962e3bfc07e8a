package render

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	svg "github.com/ajstarks/svgo"
	"gonum.org/v1/gonum/spatial/r2"
)

// WriteSVG serializes the drawing. Width and height carry the drawing
// unit and the viewBox matches the viewport.
func (d *Drawing) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	vb := d.ViewBox
	canvas.Startraw(
		fmt.Sprintf(`width="%s%s"`, num(d.Width()), d.Unit),
		fmt.Sprintf(`height="%s%s"`, num(d.Height()), d.Unit),
		fmt.Sprintf(`viewBox="%s %s %s %s"`, num(vb.Min.X), num(vb.Min.Y), num(d.Width()), num(d.Height())),
	)
	canvas.Gtransform("scale(1,1)")
	for _, p := range d.Paths {
		attrs := append(attrList(p.Attrs), `fill-rule="evenodd"`)
		canvas.Path(pathData(p.Contours), attrs...)
	}
	for _, l := range d.Labels {
		canvas.Gtransform(fmt.Sprintf("translate(%s,%s)", num(l.At.X), num(l.At.Y)))
		canvas.Text(0, 0, l.Text, attrList(l.Attrs)...)
		canvas.Gend()
	}
	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

// pathData encodes closed contours as SVG path commands.
func pathData(contours [][]r2.Vec) string {
	var b strings.Builder
	for _, c := range contours {
		for i, p := range c {
			if i == 0 {
				b.WriteString("M")
			} else {
				b.WriteString(" L")
			}
			b.WriteString(num(p.X))
			b.WriteString(",")
			b.WriteString(num(p.Y))
		}
		if len(c) > 0 {
			b.WriteString(" Z ")
		}
	}
	return strings.TrimSpace(b.String())
}

// attrList renders attributes as name="value" pairs in name order.
func attrList(a Attrs) []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf(`%s="%s"`, k, html.EscapeString(a[k])))
	}
	return out
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
