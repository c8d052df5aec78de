package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlehnert/placard/pkg/layout"
	"github.com/mlehnert/placard/pkg/pipeline"
)

// layoutCommand creates the layout command for resolving box positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout <scene file>",
		Short: "Resolve box positions for a scene",
		Long: `Resolve box positions for a scene.

The layout command reads a scene file (TOML, JSON, or YAML), runs the
incremental placer over its boxes, and writes a layout.json with the resolved
positions and displacement provenance. Render it with 'placard render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Clamp, "clamp", false, "clamp preferred positions to the canvas")

	return cmd
}

// runLayout loads the scene, resolves the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Placing %s", input)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.ScenePath = input
	opts.NoCache = noCache
	opts.Logger = logger
	opts.Formats = []string{pipeline.FormatJSON}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Placing boxes...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(input, output, ".layout.json")
	if err := layout.WriteFile(result.Layout, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	prog.done(fmt.Sprintf("Placed %d boxes", result.Stats.BoxCount))
	printSuccess("Layout complete")
	printFile(out)
	printStats(result.Stats.BoxCount, result.Stats.Displaced, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", "placard render "+out)

	return nil
}
