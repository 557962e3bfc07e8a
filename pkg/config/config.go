// Package config loads linkfab settings from TOML files.
//
// A file only needs the keys it changes; everything else keeps the
// values from Default:
//
//	[shape]
//	linkage_radius = 7.5
//	joint_radius = 1.0
//
//	[sheet]
//	width = 1000
//	padding = 5
//	margin = 10
//
//	[style]
//	stroke = "#FF0000"
//	stroke_width = 0.2
//	opacity = 1.0
//	font_size = 5
//	label_fill = "#0000FF"
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chazu/linkfab/pkg/layout"
	"github.com/chazu/linkfab/pkg/linkage"
	"github.com/chazu/linkfab/pkg/render"
)

// Config is the complete set of tunable values.
type Config struct {
	Shape Shape `toml:"shape"`
	Sheet Sheet `toml:"sheet"`
	Style Style `toml:"style"`
}

// Shape controls link body construction.
type Shape struct {
	LinkageRadius float64 `toml:"linkage_radius"`
	JointRadius   float64 `toml:"joint_radius"`
}

// Sheet controls packing.
type Sheet struct {
	Width   float64 `toml:"width"`
	Padding float64 `toml:"padding"`
	Margin  float64 `toml:"margin"`
}

// Style controls drawing cosmetics.
type Style struct {
	Stroke      string  `toml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width"`
	Opacity     float64 `toml:"opacity"`
	FontSize    float64 `toml:"font_size"`
	LabelFill   string  `toml:"label_fill"`
}

// Default returns the built-in settings.
func Default() Config {
	opts := layout.DefaultOptions()
	theme := render.DefaultTheme()
	return Config{
		Shape: Shape{
			LinkageRadius: linkage.DefaultLinkageRadius,
			JointRadius:   linkage.DefaultJointRadius,
		},
		Sheet: Sheet{
			Width:   opts.SheetWidth,
			Padding: opts.Padding,
			Margin:  opts.SheetMargin,
		},
		Style: Style{
			Stroke:      theme.Stroke,
			StrokeWidth: theme.StrokeWidth,
			Opacity:     theme.Opacity,
			FontSize:    theme.FontSize,
			LabelFill:   theme.LabelFill,
		},
	}
}

// Load reads a TOML file over the defaults and validates the result.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range value.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Shape.LinkageRadius > 0, "shape.linkage_radius must be positive, got %g", c.Shape.LinkageRadius)
	check(c.Shape.JointRadius > 0, "shape.joint_radius must be positive, got %g", c.Shape.JointRadius)
	check(c.Shape.JointRadius < c.Shape.LinkageRadius,
		"shape.joint_radius (%g) must be smaller than shape.linkage_radius (%g)",
		c.Shape.JointRadius, c.Shape.LinkageRadius)
	check(c.Sheet.Width > 0, "sheet.width must be positive, got %g", c.Sheet.Width)
	check(c.Sheet.Padding >= 0, "sheet.padding must not be negative, got %g", c.Sheet.Padding)
	check(c.Sheet.Margin >= 0, "sheet.margin must not be negative, got %g", c.Sheet.Margin)
	check(c.Style.StrokeWidth > 0, "style.stroke_width must be positive, got %g", c.Style.StrokeWidth)
	check(c.Style.Opacity >= 0 && c.Style.Opacity <= 1, "style.opacity must be within [0, 1], got %g", c.Style.Opacity)
	check(c.Style.FontSize > 0, "style.font_size must be positive, got %g", c.Style.FontSize)
	return errors.Join(errs...)
}

// LayoutOptions returns the sheet settings as packer options.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		SheetWidth:  c.Sheet.Width,
		Padding:     c.Sheet.Padding,
		SheetMargin: c.Sheet.Margin,
	}
}

// Theme returns the style settings as a drawing theme.
func (c Config) Theme() render.Theme {
	t := render.DefaultTheme()
	t.Stroke = c.Style.Stroke
	t.StrokeWidth = c.Style.StrokeWidth
	t.Opacity = c.Style.Opacity
	t.FontSize = c.Style.FontSize
	t.LabelFill = c.Style.LabelFill
	return t
}

// Apply copies the shape radii onto s.
func (c Config) Apply(s *linkage.Shaper) {
	s.LinkageRadius = c.Shape.LinkageRadius
	s.JointRadius = c.Shape.JointRadius
}
