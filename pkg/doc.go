// Package pkg provides the core libraries for Placard layout and rendering.
//
// # Overview
//
// Placard auto-arranges rectangular content boxes on a canvas. Boxes keep
// their preferred positions where possible and are nudged downward past
// collisions, so layouts stay predictable and explainable. The pkg directory
// is organized into four main areas:
//
//  1. [place] - The placement engine (overlap predicate, incremental placer)
//  2. [scene] / [layout] - Input and output document types
//  3. [render] - Output sinks (SVG, PNG, PDF, JSON, Graphviz DOT)
//  4. [pipeline] - Orchestration (scene → place → render) with caching
//
// # Architecture
//
// The typical data flow through Placard:
//
//	Scene file (TOML/JSON/YAML)
//	         ↓
//	    [scene] package (decode, validate, measure)
//	         ↓
//	    [place] package (collision resolution)
//	         ↓
//	    [render/sink] package (output generation)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Place boxes and render an SVG:
//
//	import (
//	    "github.com/mlehnert/placard/pkg/pipeline"
//	    "github.com/mlehnert/placard/pkg/render/sink"
//	    "github.com/mlehnert/placard/pkg/scene"
//	)
//
//	// 1. Load and normalize the scene
//	s, _ := scene.ReadFile("deck.toml")
//	_ = s.Normalize(scene.DefaultMeasurer())
//
//	// 2. Resolve positions
//	l, _ := pipeline.Place(s, false)
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(l, sink.WithGhosts())
//
// # Main Packages
//
// ## Placement Engine
//
// [place] - The core engine: an axis-aligned overlap predicate with uniform
// padding and a greedy single-pass placer that displaces colliding boxes
// downward. Every placement records provenance (preferred position and the
// boxes it collided with).
//
// ## Documents
//
// [scene] - Input documents: a canvas plus content items, decoded from TOML,
// JSON, or YAML. Items without explicit sizes are measured by a pluggable
// [scene.Measurer].
//
// [layout] - The serialized placement result shared by render sinks, the
// HTTP API, and the document store (JSON on disk, BSON in MongoDB).
//
// ## Rendering
//
// [render/sink] - Output formats: SVG (with optional displacement ghosts and
// grid), PNG and PDF via rsvg-convert, JSON, and Graphviz DOT provenance
// graphs.
//
// [render] - Format conversion utilities (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [pipeline] - Complete layout pipeline (scene → place → render) used by the
// CLI and the HTTP API. Ensures consistent behavior across entry points, with
// layout and artifact caching.
//
// [cache] - Cache backends: file cache for the CLI, Redis for server
// deployments, and a null cache for tests.
//
// [store] - Named layout documents: file store for local use, MongoDB for
// server deployments.
//
// [server] - The HTTP API (chi router) exposing one-shot layouts and
// document CRUD.
//
// [observability] - Pluggable hooks for pipeline, cache, and server events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/place/...        # Specific package
//	go test -run Example           # Examples only
//
// [place]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/place
// [scene]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/scene
// [scene.Measurer]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/scene#Measurer
// [layout]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/layout
// [render]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/cache
// [store]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/store
// [server]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/server
// [observability]: https://pkg.go.dev/github.com/mlehnert/placard/pkg/observability
package pkg
