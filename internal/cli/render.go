package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlehnert/placard/pkg/layout"
	"github.com/mlehnert/placard/pkg/pipeline"
	"github.com/mlehnert/placard/pkg/render/sink"
)

// renderCommand creates the render command for producing visual output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		trace      bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render <scene or layout file>",
		Short: "Render a scene or computed layout to visual output",
		Long: `Render a scene or computed layout to visual output.

The render command accepts either a scene file (TOML, JSON, or YAML) or a
layout.json produced by 'placard layout'. Scene files run the full pipeline;
layout files skip placement and go straight to rendering.

Supported formats: svg, png, pdf, json, dot. The dot format emits a Graphviz
digraph of displacement provenance (which boxes pushed which).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache, trace)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Clamp, "clamp", false, "clamp preferred positions to the canvas")
	cmd.Flags().BoolVar(&opts.Ghosts, "ghosts", false, "draw preferred positions of displaced boxes as outlines")
	cmd.Flags().Float64Var(&opts.Grid, "grid", 0, "draw a grid with the given step (0 disables)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "raster scale factor for PNG output")
	cmd.Flags().Float64Var(&opts.FontSize, "font-size", pipeline.DefaultFontSize, "label font size in canvas units")
	cmd.Flags().BoolVar(&trace, "trace", false, "also render the displacement provenance graph as <base>_trace.svg")

	return cmd
}

// runRender runs the pipeline (or just the render stage for layout files)
// and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache, trace bool) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Rendering %s as %s", input, strings.Join(opts.Formats, ", "))

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.NoCache = noCache
	opts.Logger = logger

	var (
		artifacts map[string][]byte
		l         layout.Layout
		stats     pipeline.Stats
		cacheHit  bool
	)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	if strings.HasSuffix(input, ".layout.json") {
		l, err = layout.ReadFile(input)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("load layout %s: %w", input, err)
		}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		var renderHit bool
		artifacts, renderHit, _, err = runner.Render(ctx, l, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		stats = pipeline.Stats{BoxCount: len(l.Boxes), Displaced: l.DisplacedCount()}
		cacheHit = renderHit
	} else {
		opts.ScenePath = input
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		artifacts = result.Artifacts
		l = result.Layout
		stats = result.Stats
		cacheHit = result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	if err := writeArtifacts(artifacts, opts.Formats, input, output); err != nil {
		return err
	}
	if trace {
		if err := writeTrace(l, renderBasePath(input, output)); err != nil {
			return err
		}
	}
	printStats(stats.BoxCount, stats.Displaced, cacheHit)

	return nil
}

// writeTrace renders the displacement provenance graph through Graphviz.
func writeTrace(l layout.Layout, base string) error {
	svg, err := sink.RenderProvenanceSVG(sink.RenderDOT(l))
	if err != nil {
		return fmt.Errorf("render trace: %w", err)
	}
	path := base + "_trace.svg"
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// writeArtifacts writes one file per rendered format. A single format honors
// the explicit output path as-is; multiple formats treat it as a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	base := renderBasePath(input, output)

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// renderBasePath derives the base output path from the output and input paths.
func renderBasePath(input, output string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	base := strings.TrimSuffix(input, ".layout.json")
	return strings.TrimSuffix(base, filepath.Ext(base))
}
