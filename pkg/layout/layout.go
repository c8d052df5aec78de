// Package layout defines the serialized form of a placement result.
//
// A Layout is the contract between the placement engine and everything
// downstream: render sinks, the HTTP API, and the document store. It is
// encoded as JSON on disk and over the wire, and as BSON when persisted
// to MongoDB, so both tag sets live on the struct.
package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mlehnert/placard/pkg/place"
	"github.com/mlehnert/placard/pkg/scene"
)

// Box is one placed box with its displacement provenance.
type Box struct {
	ID    string  `json:"id" bson:"id"`
	Label string  `json:"label" bson:"label"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	W     float64 `json:"width" bson:"width"`
	H     float64 `json:"height" bson:"height"`

	// Provenance: where the caller wanted the box and which committed
	// boxes pushed it away from there.
	PreferredX float64  `json:"preferred_x" bson:"preferred_x"`
	PreferredY float64  `json:"preferred_y" bson:"preferred_y"`
	Displaced  bool     `json:"displaced,omitempty" bson:"displaced,omitempty"`
	Against    []string `json:"against,omitempty" bson:"against,omitempty"`
}

// Layout is a complete placement result for one canvas.
type Layout struct {
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	Padding float64 `json:"padding" bson:"padding"`
	Boxes   []Box   `json:"boxes" bson:"boxes"`
}

// New builds a Layout from a canvas and the placement trace.
func New(canvas scene.Canvas, steps []place.Step) Layout {
	l := Layout{
		Width:   canvas.Width,
		Height:  canvas.Height,
		Padding: canvas.Padding,
		Boxes:   make([]Box, 0, len(steps)),
	}
	for _, s := range steps {
		l.Boxes = append(l.Boxes, Box{
			ID:         s.Box.ID,
			Label:      s.Box.Label,
			X:          s.Box.X,
			Y:          s.Box.Y,
			W:          s.Box.W,
			H:          s.Box.H,
			PreferredX: s.PreferredX,
			PreferredY: s.PreferredY,
			Displaced:  s.Displaced(),
			Against:    s.Against,
		})
	}
	return l
}

// DisplacedCount returns how many boxes moved from their preferred position.
func (l Layout) DisplacedCount() int {
	n := 0
	for _, b := range l.Boxes {
		if b.Displaced {
			n++
		}
	}
	return n
}

// ReadFile loads a layout from a .layout.json file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return l, nil
}

// WriteFile writes a layout as indented JSON.
func WriteFile(l Layout, path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write layout %s: %w", path, err)
	}
	return nil
}
