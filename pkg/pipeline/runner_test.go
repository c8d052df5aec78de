package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mlehnert/placard/pkg/cache"
	"github.com/mlehnert/placard/pkg/scene"
)

func testScene() *scene.Scene {
	return &scene.Scene{
		Canvas: scene.Canvas{Width: 800, Height: 600, Padding: 0.1},
		Items: []scene.Item{
			{ID: "a", Label: "A", X: 0, Y: 0, Width: 3, Height: 1},
			{ID: "b", Label: "B", X: 0, Y: 0.5, Width: 3, Height: 1},
		},
	}
}

func TestPlace(t *testing.T) {
	l, err := Place(testScene(), false)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	if len(l.Boxes) != 2 {
		t.Fatalf("box count = %d, want 2", len(l.Boxes))
	}
	b := l.Boxes[1]
	if !b.Displaced || b.Y != 1.1 {
		t.Errorf("box b = %+v, want displaced to y=1.1", b)
	}
	if l.DisplacedCount() != 1 {
		t.Errorf("DisplacedCount = %d, want 1", l.DisplacedCount())
	}
}

func TestPlaceRejectsBadItem(t *testing.T) {
	s := testScene()
	s.Items[1].Width = -1

	if _, err := Place(s, false); err == nil {
		t.Error("Place accepted negative width")
	}
}

func TestExecuteScene(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	opts := Options{Formats: []string{FormatSVG, FormatJSON, FormatDOT}}
	result, err := runner.ExecuteScene(context.Background(), testScene(), opts)
	if err != nil {
		t.Fatalf("ExecuteScene: %v", err)
	}

	for _, format := range opts.Formats {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("artifact %q is empty", format)
		}
	}
	if result.Stats.BoxCount != 2 || result.Stats.Displaced != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.CacheInfo.LayoutHit {
		t.Error("layout hit reported with null cache")
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), `"a" -> "b"`) {
		t.Errorf("DOT artifact missing provenance edge:\n%s", result.Artifacts[FormatDOT])
	}
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	content := `{
  "canvas": {"width": 200, "height": 100, "padding": 2},
  "boxes": [{"label": "Only", "x": 10, "y": 10, "width": 50, "height": 20}]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write scene: %v", err)
	}

	runner := NewRunner(nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{ScenePath: path})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.BoxCount != 1 {
		t.Errorf("BoxCount = %d, want 1", result.Stats.BoxCount)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), ">Only<") {
		t.Error("SVG artifact missing label")
	}
}

func TestLayoutCacheRoundTrip(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(c, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := Options{Formats: []string{FormatJSON}}

	first, err := runner.ExecuteScene(ctx, testScene(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first run reported a layout cache hit")
	}

	second, err := runner.ExecuteScene(ctx, testScene(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run missed the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the artifact cache")
	}
	if len(second.Layout.Boxes) != len(first.Layout.Boxes) {
		t.Errorf("cached layout differs: %d vs %d boxes", len(second.Layout.Boxes), len(first.Layout.Boxes))
	}

	// NoCache bypasses reads.
	third, err := runner.ExecuteScene(ctx, testScene(), Options{Formats: []string{FormatJSON}, NoCache: true})
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("NoCache run reported a cache hit")
	}
}
