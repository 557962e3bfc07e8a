package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/linkfab/pkg/config"
	"github.com/chazu/linkfab/pkg/engine"
	"github.com/chazu/linkfab/pkg/kernel"
	"github.com/chazu/linkfab/pkg/kernel/polyclip"
	"github.com/chazu/linkfab/pkg/layout"
	"github.com/chazu/linkfab/pkg/linkage"
	"github.com/chazu/linkfab/pkg/render"
)

// DefaultOutputName is the base name used when no -o flag is given.
const DefaultOutputName = "linkage"

// assemblySuffix is appended to the base name of the assembled drawing.
const assemblySuffix = "_assembly_manual"

// App runs the linkage pipeline: script, configuration, layout and the
// two drawings.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	config config.Config
}

// Result is the full output of one run. When Errors is non-empty or
// Validation has blocking errors, the later stages were skipped and the
// drawings are nil.
type Result struct {
	Errors        []engine.EvalError
	Validation    linkage.ValidationResult
	Configuration *linkage.Configuration
	Shaper        *linkage.Shaper
	Plan          *layout.Plan
	Fabrication   *render.Drawing
	Assembly      *render.Drawing
}

// Failed reports whether the run stopped before rendering.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0 || !r.Validation.OK()
}

// NewApp creates a new App with an engine and the polyclip kernel.
func NewApp(cfg config.Config) *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: polyclip.New(),
		config: cfg,
	}
}

// Process evaluates source and, if it is valid, lays out and renders the
// mechanism. The returned error is reserved for fatal failures (timeout,
// panic, layout commit); problems in the source are reported through
// Result.Errors and Result.Validation.
func (a *App) Process(ctx context.Context, source string) (*Result, error) {
	logger := loggerFromContext(ctx)
	result := &Result{}

	// Step 1: Evaluate the script into raw segments.
	segments, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	if len(evalErrs) > 0 {
		result.Errors = evalErrs
		return result, nil
	}
	logger.Debug("evaluated script", "segments", len(segments))

	// Step 2: Build and validate the configuration.
	cfg := linkage.BuildFromSegments(segments)
	result.Configuration = cfg
	result.Validation = linkage.Validate(cfg)
	if !result.Validation.OK() {
		return result, nil
	}
	logger.Debug("built configuration", "hubs", len(cfg.Hubs), "links", len(cfg.Links))

	// Step 3: Pack links onto the sheet.
	shaper := linkage.NewShaper(a.kernel)
	a.config.Apply(shaper)
	result.Shaper = shaper

	plan, err := layout.Layout(shaper, cfg, a.config.LayoutOptions())
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Plan = plan
	logger.Debug("packed sheet", "rows", plan.Rows)

	// Step 4: Render both spaces.
	theme := a.config.Theme()
	result.Fabrication = render.Render(shaper, cfg, linkage.Fabrication).Style(theme)
	result.Assembly = render.Render(shaper, cfg, linkage.Assembled).Style(theme)

	return result, nil
}

// OutputPaths returns the file names for base name: the fabrication
// drawing, the assembly drawing and the DXF export. Any extension on
// name is dropped.
func OutputPaths(name string) (fabrication, assembly, dxf string) {
	if name == "" {
		name = DefaultOutputName
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + ".svg", base + assemblySuffix + ".svg", base + ".dxf"
}

// WriteOutputs writes the drawings of a successful result and returns
// the paths written.
func (a *App) WriteOutputs(ctx context.Context, res *Result, name string, withDXF bool) ([]string, error) {
	if res.Failed() {
		return nil, fmt.Errorf("nothing to write: processing failed")
	}
	logger := loggerFromContext(ctx)
	fabPath, asmPath, dxfPath := OutputPaths(name)

	written := make([]string, 0, 3)
	for _, out := range []struct {
		path string
		d    *render.Drawing
	}{
		{fabPath, res.Fabrication},
		{asmPath, res.Assembly},
	} {
		if err := writeSVG(out.path, out.d); err != nil {
			return written, err
		}
		logger.Debug("wrote drawing", "path", out.path, "space", out.d.Space)
		written = append(written, out.path)
	}

	if withDXF {
		if err := res.Fabrication.WriteDXF(dxfPath); err != nil {
			return written, err
		}
		logger.Debug("wrote dxf", "path", dxfPath)
		written = append(written, dxfPath)
	}
	return written, nil
}

func writeSVG(path string, d *render.Drawing) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := d.WriteSVG(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
