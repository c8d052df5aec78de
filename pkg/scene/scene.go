// Package scene loads declarative scene files describing the content boxes
// to place on a canvas.
//
// A scene names a canvas (width, height, padding) and an ordered list of
// items. Each item carries a label and a preferred position; dimensions are
// optional and, when absent, are estimated by a Measurer. Item order is
// meaningful: the placement engine resolves collisions in favor of earlier
// items, so scenes read top to bottom like the documents they describe.
//
// Scenes are written in TOML, JSON, or YAML; the format is chosen by file
// extension. A minimal TOML scene:
//
//	[canvas]
//	width = 800
//	height = 600
//	padding = 8
//
//	[[box]]
//	label = "Title"
//	x = 40
//	y = 40
//	width = 300
//	height = 60
//
//	[[box]]
//	label = "Body"
//	x = 40
//	y = 80
package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalid is returned when a scene fails validation.
var ErrInvalid = errors.New("invalid scene")

// Canvas describes the drawing area shared by all items in a scene.
type Canvas struct {
	Width   float64 `json:"width" toml:"width" yaml:"width"`
	Height  float64 `json:"height" toml:"height" yaml:"height"`
	Padding float64 `json:"padding" toml:"padding" yaml:"padding"`
}

// Item is one content box request: a label, a preferred top-left position,
// and optional explicit dimensions. Zero dimensions mean "measure the label".
type Item struct {
	ID     string  `json:"id,omitempty" toml:"id" yaml:"id,omitempty"`
	Label  string  `json:"label" toml:"label" yaml:"label"`
	X      float64 `json:"x" toml:"x" yaml:"x"`
	Y      float64 `json:"y" toml:"y" yaml:"y"`
	Width  float64 `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
}

// Scene is a parsed scene file.
type Scene struct {
	Canvas Canvas `json:"canvas" toml:"canvas" yaml:"canvas"`
	Items  []Item `json:"boxes" toml:"box" yaml:"boxes"`
}

// Validate checks the canvas and items without mutating the scene.
func (s *Scene) Validate() error {
	if s.Canvas.Width <= 0 || s.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas %vx%v must be positive", ErrInvalid, s.Canvas.Width, s.Canvas.Height)
	}
	if s.Canvas.Padding < 0 {
		return fmt.Errorf("%w: padding %v must be >= 0", ErrInvalid, s.Canvas.Padding)
	}
	if len(s.Items) == 0 {
		return fmt.Errorf("%w: no boxes", ErrInvalid)
	}
	for i, item := range s.Items {
		if item.Label == "" {
			return fmt.Errorf("%w: box %d has no label", ErrInvalid, i)
		}
		if item.Width < 0 || item.Height < 0 {
			return fmt.Errorf("%w: box %d dimensions %vx%v must not be negative", ErrInvalid, i, item.Width, item.Height)
		}
	}
	return nil
}

// Normalize validates the scene, fills missing item IDs with random UUIDs,
// and estimates missing dimensions with m. Passing a nil measurer uses the
// default heuristic.
func (s *Scene) Normalize(m Measurer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if m == nil {
		m = DefaultMeasurer()
	}
	for i := range s.Items {
		item := &s.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Width == 0 || item.Height == 0 {
			w, h := m.Measure(item.Label)
			if item.Width == 0 {
				item.Width = w
			}
			if item.Height == 0 {
				item.Height = h
			}
		}
	}
	return nil
}
