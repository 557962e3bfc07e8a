package render

import "strconv"

// Theme is the cosmetic styling applied after a drawing is built.
type Theme struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	FontSize    float64
	LabelFill   string
}

// DefaultTheme returns thin red outlines with blue labels.
func DefaultTheme() Theme {
	return Theme{
		Fill:        "none",
		Stroke:      "#FF0000",
		StrokeWidth: 0.2,
		Opacity:     1.0,
		FontSize:    5,
		LabelFill:   "#0000FF",
	}
}

// Style sets the theme's attributes on every path and label. Existing
// attributes with other names are kept. It returns d.
func (d *Drawing) Style(t Theme) *Drawing {
	for i := range d.Paths {
		a := ensure(&d.Paths[i].Attrs)
		a["fill"] = t.Fill
		a["stroke"] = t.Stroke
		a["stroke-width"] = num(t.StrokeWidth)
		a["opacity"] = num(t.Opacity)
	}
	for i := range d.Labels {
		a := ensure(&d.Labels[i].Attrs)
		a["font-size"] = num(t.FontSize)
		a["fill"] = t.LabelFill
	}
	return d
}

func ensure(a *Attrs) Attrs {
	if *a == nil {
		*a = Attrs{}
	}
	return *a
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
