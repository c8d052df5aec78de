package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlehnert/placard/pkg/cache"
	"github.com/mlehnert/placard/pkg/layout"
	"github.com/mlehnert/placard/pkg/observability"
	"github.com/mlehnert/placard/pkg/place"
	"github.com/mlehnert/placard/pkg/render/sink"
	"github.com/mlehnert/placard/pkg/scene"
)

// DefaultTTL is how long cached layouts and artifacts live.
const DefaultTTL = 24 * time.Hour

// Runner executes the pipeline with a shared cache and logger.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a
// nil logger falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache.
func (r *Runner) Close() {
	_ = r.cache.Close()
}

// Execute runs the complete scene → place → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	s, sceneTime, err := r.LoadScene(ctx, opts)
	if err != nil {
		return nil, err
	}

	result, err := r.ExecuteScene(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.SceneTime = sceneTime
	return result, nil
}

// ExecuteScene runs place → render for an already-loaded scene.
// The scene is normalized in place.
func (r *Runner) ExecuteScene(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := s.Normalize(opts.Measurer); err != nil {
		return nil, err
	}

	l, layoutHit, placeTime, err := r.PlaceScene(ctx, s, opts)
	if err != nil {
		return nil, err
	}

	artifacts, renderHit, renderTime, err := r.Render(ctx, l, opts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Scene:     s,
		Layout:    l,
		Artifacts: artifacts,
		Stats: Stats{
			BoxCount:   len(l.Boxes),
			Displaced:  l.DisplacedCount(),
			PlaceTime:  placeTime,
			RenderTime: renderTime,
		},
		CacheInfo: CacheInfo{LayoutHit: layoutHit, RenderHit: renderHit},
	}, nil
}

// LoadScene reads the scene file named in opts.
func (r *Runner) LoadScene(ctx context.Context, opts Options) (*scene.Scene, time.Duration, error) {
	start := time.Now()
	observability.Pipeline().OnSceneStart(ctx, opts.ScenePath)

	s, err := scene.ReadFile(opts.ScenePath)
	elapsed := time.Since(start)
	boxCount := 0
	if s != nil {
		boxCount = len(s.Items)
	}
	observability.Pipeline().OnSceneComplete(ctx, opts.ScenePath, boxCount, elapsed, err)
	if err != nil {
		return nil, elapsed, err
	}

	r.logger.Debug("scene loaded", "path", opts.ScenePath, "boxes", boxCount)
	return s, elapsed, nil
}

// PlaceScene resolves box positions for a normalized scene, consulting the
// layout cache first. The bool reports a cache hit.
func (r *Runner) PlaceScene(ctx context.Context, s *scene.Scene, opts Options) (layout.Layout, bool, time.Duration, error) {
	start := time.Now()
	observability.Pipeline().OnPlaceStart(ctx, len(s.Items))

	key, err := r.layoutKey(s, opts)
	if err != nil {
		return layout.Layout{}, false, 0, err
	}

	if !opts.NoCache {
		if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
			var l layout.Layout
			if err := json.Unmarshal(data, &l); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				observability.Pipeline().OnPlaceComplete(ctx, len(l.Boxes), l.DisplacedCount(), time.Since(start), nil)
				r.logger.Debug("layout cache hit", "boxes", len(l.Boxes))
				return l, true, time.Since(start), nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l, err := Place(s, opts.Clamp)
	elapsed := time.Since(start)
	observability.Pipeline().OnPlaceComplete(ctx, len(s.Items), l.DisplacedCount(), elapsed, err)
	if err != nil {
		return layout.Layout{}, false, elapsed, err
	}

	if data, err := json.Marshal(l); err == nil {
		if err := r.cache.Set(ctx, key, data, DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	r.logger.Debug("layout computed", "boxes", len(l.Boxes), "displaced", l.DisplacedCount())
	return l, false, elapsed, nil
}

// Place runs the incremental placer over a normalized scene. It is the
// uncached core of the pipeline, exposed for callers that hold their own
// scene data.
func Place(s *scene.Scene, clamp bool) (layout.Layout, error) {
	var popts []place.Option
	if clamp {
		popts = append(popts, place.WithBounds(s.Canvas.Width, s.Canvas.Height))
	}
	p, err := place.New(s.Canvas.Padding, popts...)
	if err != nil {
		return layout.Layout{}, err
	}

	for _, item := range s.Items {
		b := place.Box{ID: item.ID, Label: item.Label, X: item.X, Y: item.Y, W: item.Width, H: item.Height}
		if _, err := p.PlaceBox(b); err != nil {
			return layout.Layout{}, fmt.Errorf("place %q: %w", item.Label, err)
		}
	}
	return layout.New(s.Canvas, p.Steps()), nil
}

// Render produces the requested artifacts, consulting the artifact cache per
// format. The bool reports whether every artifact came from cache.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, time.Duration, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	layoutHash, err := hashLayout(l)
	if err != nil {
		return nil, false, 0, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		key := cache.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{
			Format:   format,
			Ghosts:   opts.Ghosts,
			Grid:     opts.Grid,
			Scale:    opts.Scale,
			FontSize: opts.FontSize,
		})

		if !opts.NoCache {
			if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allHit = false

		data, err := r.renderFormat(l, format, opts)
		if err != nil {
			elapsed := time.Since(start)
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, elapsed, err)
			return nil, false, elapsed, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.cache.Set(ctx, key, data, DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	elapsed := time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, elapsed, nil)
	return artifacts, allHit, elapsed, nil
}

func (r *Runner) renderFormat(l layout.Layout, format string, opts Options) ([]byte, error) {
	svgOpts := []sink.SVGOption{sink.WithFontSize(opts.FontSize)}
	if opts.Ghosts {
		svgOpts = append(svgOpts, sink.WithGhosts())
	}
	if opts.Grid > 0 {
		svgOpts = append(svgOpts, sink.WithGrid(opts.Grid))
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatDOT:
		return []byte(sink.RenderDOT(l)), nil
	default:
		return nil, ValidateFormat(format)
	}
}

// layoutKey derives the cache key for a normalized scene's layout.
func (r *Runner) layoutKey(s *scene.Scene, opts Options) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("hash scene: %w", err)
	}
	return cache.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{
		Padding: s.Canvas.Padding,
		Width:   s.Canvas.Width,
		Height:  s.Canvas.Height,
		Clamp:   opts.Clamp,
	}), nil
}

func hashLayout(l layout.Layout) (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("hash layout: %w", err)
	}
	return cache.Hash(data), nil
}
