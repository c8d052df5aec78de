package layout

import (
	"path/filepath"
	"testing"

	"github.com/mlehnert/placard/pkg/place"
	"github.com/mlehnert/placard/pkg/scene"
)

func sampleSteps() []place.Step {
	return []place.Step{
		{
			Box:        place.Box{ID: "a", Label: "A", X: 0, Y: 0, W: 3, H: 1},
			PreferredX: 0, PreferredY: 0,
		},
		{
			Box:        place.Box{ID: "b", Label: "B", X: 0, Y: 1.1, W: 3, H: 1},
			PreferredX: 0, PreferredY: 0.5,
			Against: []string{"a"},
		},
	}
}

func TestNew(t *testing.T) {
	canvas := scene.Canvas{Width: 800, Height: 600, Padding: 0.1}
	l := New(canvas, sampleSteps())

	if l.Width != 800 || l.Height != 600 || l.Padding != 0.1 {
		t.Errorf("frame = %vx%v padding %v", l.Width, l.Height, l.Padding)
	}
	if len(l.Boxes) != 2 {
		t.Fatalf("box count = %d, want 2", len(l.Boxes))
	}
	if l.Boxes[0].Displaced {
		t.Error("box a marked displaced")
	}
	b := l.Boxes[1]
	if !b.Displaced || b.Y != 1.1 || b.PreferredY != 0.5 {
		t.Errorf("box b = %+v", b)
	}
	if len(b.Against) != 1 || b.Against[0] != "a" {
		t.Errorf("box b against = %v, want [a]", b.Against)
	}
	if l.DisplacedCount() != 1 {
		t.Errorf("DisplacedCount() = %d, want 1", l.DisplacedCount())
	}
}

func TestReadWriteFile(t *testing.T) {
	l := New(scene.Canvas{Width: 100, Height: 100, Padding: 2}, sampleSteps())
	path := filepath.Join(t.TempDir(), "out.layout.json")

	if err := WriteFile(l, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got.Width != l.Width || len(got.Boxes) != len(l.Boxes) {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Boxes[1].Against[0] != "a" {
		t.Errorf("provenance lost: %+v", got.Boxes[1])
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ReadFile on missing file succeeded")
	}
}
