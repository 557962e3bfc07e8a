package main

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/chazu/linkfab/pkg/config"
	"github.com/chazu/linkfab/pkg/linkage"
	"github.com/spf13/cobra"
)

// newRootCmd builds the linkfab command tree. Log output goes to logOut.
func newRootCmd(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "linkfab",
		Short: "linkfab lays out planar linkages for fabrication",
		Long: `linkfab reads a linkage script, turns every link into a cuttable part,
packs the parts onto a sheet and writes the cutting layout plus an
assembly reference drawing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(logOut, level))
			cmd.SetContext(ctx)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newInspectCmd())
	return root
}

// execute runs the CLI with the process arguments.
func execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

type processFlags struct {
	configPath string
}

func (f *processFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML settings file")
}

func (f *processFlags) load() (config.Config, error) {
	if f.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(f.configPath)
}

// process reads the script at path and runs the pipeline, logging source
// errors and validation findings.
func process(ctx context.Context, flags *processFlags, path string) (*App, *Result, error) {
	logger := loggerFromContext(ctx)

	cfg, err := flags.load()
	if err != nil {
		return nil, nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read script: %w", err)
	}

	app := NewApp(cfg)
	res, err := app.Process(ctx, string(source))
	if err != nil {
		return nil, nil, err
	}

	for _, e := range res.Errors {
		logger.Error("script error", "file", path, "line", e.Line, "msg", e.Message)
	}
	for _, w := range res.Validation.Warnings {
		logger.Warn(w.Message, "link", w.LinkID)
	}
	for _, e := range res.Validation.Errors {
		logger.Error(e.Message, "link", e.LinkID)
	}
	if res.Failed() {
		return app, res, fmt.Errorf("%s: %d script errors, %d validation errors",
			path, len(res.Errors), len(res.Validation.Errors))
	}
	return app, res, nil
}

func newRenderCmd() *cobra.Command {
	var (
		flags  processFlags
		output string
		dxf    bool
	)

	cmd := &cobra.Command{
		Use:   "render <script>",
		Short: "Write the fabrication and assembly drawings",
		Long: `Render evaluates a linkage script and writes <name>.svg (the packed
cutting layout) and <name>_assembly_manual.svg (the links as designed).
With --dxf the cutting layout is also written as <name>.dxf.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			app, res, err := process(ctx, &flags, args[0])
			if err != nil {
				return err
			}
			written, err := app.WriteOutputs(ctx, res, output, dxf)
			if err != nil {
				return err
			}
			for _, p := range written {
				logger.Info("wrote", "path", p)
			}
			prog.done("rendered linkage",
				"links", len(res.Configuration.Links),
				"rows", res.Plan.Rows)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", DefaultOutputName, "base name of the output files")
	cmd.Flags().BoolVar(&dxf, "dxf", false, "also write the cutting layout as DXF")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var flags processFlags

	cmd := &cobra.Command{
		Use:   "inspect <script>",
		Short: "Print hubs, links and sheet placements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := process(cmd.Context(), &flags, args[0])
			if res != nil && len(res.Errors) == 0 && res.Configuration != nil {
				printInspection(cmd.OutOrStdout(), res)
			}
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func printInspection(w io.Writer, res *Result) {
	cfg := res.Configuration

	printTitle(w, fmt.Sprintf("Hubs (%d)", len(cfg.Hubs)))
	for _, h := range cfg.Hubs {
		fmt.Fprintf(w, "  %s  (%s, %s)  %s\n",
			styleLabel.Render(h.Label()), num(h.Position.X), num(h.Position.Y),
			styleDim.Render(fmt.Sprintf("%d links", len(cfg.LinksAt(h)))))
	}

	fmt.Fprintln(w)
	printTitle(w, fmt.Sprintf("Links (%d)", len(cfg.Links)))
	var placements map[*linkage.Link]int
	if res.Plan != nil {
		placements = make(map[*linkage.Link]int, len(res.Plan.Placements))
		for i, p := range res.Plan.Placements {
			placements[p.Link] = i
		}
	}
	for _, l := range cfg.Links {
		fmt.Fprintf(w, "  %s  length %s", styleLabel.Render(l.ID()), num(l.Length()))
		if i, ok := placements[l]; ok {
			p := res.Plan.Placements[i]
			fmt.Fprintf(w, "  part %s x %s  sheet (%s, %s) row %d",
				num(p.Size.X), num(p.Size.Y), num(p.Center.X), num(p.Center.Y), p.Row)
		}
		fmt.Fprintln(w)
	}

	if res.Plan != nil && len(res.Plan.Placements) > 0 {
		b := res.Plan.Bounds()
		fmt.Fprintln(w)
		printTitle(w, "Sheet")
		printDetail(w, "rows", fmt.Sprint(res.Plan.Rows))
		printDetail(w, "extent", fmt.Sprintf("%s x %s", num(b.Max.X-b.Min.X), num(b.Max.Y-b.Min.Y)))
	}

	if len(res.Validation.Warnings)+len(res.Validation.Errors) > 0 {
		fmt.Fprintln(w)
		printTitle(w, "Validation")
		for _, e := range res.Validation.Errors {
			printError(w, e.Error())
		}
		for _, e := range res.Validation.Warnings {
			printWarning(w, e.Error())
		}
	}
}
