// Package pipeline provides the scene → place → render pipeline for Placard.
//
// The pipeline is shared by the CLI and the HTTP API so both entry points
// behave identically. It consists of three stages:
//
//  1. Scene: load and normalize the scene (fill IDs, measure unsized boxes)
//  2. Place: run the incremental placer over the scene's items
//  3. Render: generate output artifacts (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    ScenePath: "deck.toml",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlehnert/placard/pkg/layout"
	"github.com/mlehnert/placard/pkg/scene"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// Default render values shared by CLI and API.
const (
	// DefaultScale is the raster scale factor for PNG output.
	DefaultScale = 2.0

	// DefaultFontSize is the SVG label font size in canvas units.
	DefaultFontSize = 14.0
)

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scene options. ScenePath is used by the CLI; the API supplies the
	// scene directly and leaves it empty.
	ScenePath string `json:"scene_path,omitempty"`

	// Placement options. Clamp pulls preferred positions inside the canvas
	// before collision resolution.
	Clamp bool `json:"clamp,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Ghosts   bool     `json:"ghosts,omitempty"`
	Grid     float64  `json:"grid,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	FontSize float64  `json:"font_size,omitempty"`

	// NoCache disables cache reads for this run (writes still happen).
	NoCache bool `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger    `json:"-"`
	Measurer scene.Measurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Grid < 0 {
		return fmt.Errorf("invalid grid step: %v (must be >= 0)", o.Grid)
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Measurer == nil {
		o.Measurer = scene.DefaultMeasurer()
	}

	o.validated = true
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the normalized scene.
	Scene *scene.Scene

	// Layout contains the resolved box positions and provenance.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BoxCount  int
	Displaced int

	SceneTime  time.Duration
	PlaceTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}
