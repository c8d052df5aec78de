package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlehnert/placard/pkg/layout"
	"github.com/mlehnert/placard/pkg/pipeline"
	"github.com/mlehnert/placard/pkg/scene"
)

// inspectCommand creates the inspect command for the interactive trace viewer.
func (c *CLI) inspectCommand() *cobra.Command {
	var clamp bool

	cmd := &cobra.Command{
		Use:   "inspect <scene or layout file>",
		Short: "Step through a placement trace interactively",
		Long: `Step through a placement trace interactively.

The inspect command opens a terminal UI showing the canvas after each
placement step: which box was placed, whether it was displaced, and which
earlier boxes pushed it. Scene files are placed first; layout files are
inspected as-is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], clamp)
		},
	}

	cmd.Flags().BoolVar(&clamp, "clamp", false, "clamp preferred positions to the canvas")

	return cmd
}

// runInspect resolves the layout and opens the trace viewer.
func (c *CLI) runInspect(ctx context.Context, input string, clamp bool) error {
	l, err := loadTrace(input, clamp)
	if err != nil {
		return err
	}

	program := tea.NewProgram(NewTraceModel(l), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}

// loadTrace produces a layout from either a scene or a layout file.
func loadTrace(input string, clamp bool) (layout.Layout, error) {
	if strings.HasSuffix(input, ".layout.json") {
		return layout.ReadFile(input)
	}

	s, err := scene.ReadFile(input)
	if err != nil {
		return layout.Layout{}, err
	}
	if err := s.Normalize(scene.DefaultMeasurer()); err != nil {
		return layout.Layout{}, err
	}
	return pipeline.Place(s, clamp)
}
