package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlehnert/placard/pkg/layout"
)

func traceLayout() layout.Layout {
	return layout.Layout{
		Width:  100,
		Height: 100,
		Boxes: []layout.Box{
			{ID: "a", Label: "first", X: 0, Y: 0, W: 30, H: 10, PreferredX: 0, PreferredY: 0},
			{ID: "b", Label: "second", X: 0, Y: 12, W: 30, H: 10, PreferredX: 0, PreferredY: 0, Displaced: true, Against: []string{"a"}},
			{ID: "c", Label: "third", X: 50, Y: 50, W: 30, H: 10, PreferredX: 50, PreferredY: 50},
		},
	}
}

func TestNewTraceModel(t *testing.T) {
	m := NewTraceModel(traceLayout())
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want last step 2", m.Cursor)
	}

	empty := NewTraceModel(layout.Layout{})
	if empty.Cursor != 0 {
		t.Errorf("empty layout Cursor = %d, want 0", empty.Cursor)
	}
}

func TestTraceModelNavigation(t *testing.T) {
	key := func(s string) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	var m tea.Model = NewTraceModel(traceLayout())

	m, _ = m.Update(key("g"))
	if m.(TraceModel).Cursor != 0 {
		t.Errorf("after g: Cursor = %d, want 0", m.(TraceModel).Cursor)
	}

	m, _ = m.Update(key("l"))
	if m.(TraceModel).Cursor != 1 {
		t.Errorf("after l: Cursor = %d, want 1", m.(TraceModel).Cursor)
	}

	m, _ = m.Update(key("h"))
	m, _ = m.Update(key("h"))
	if m.(TraceModel).Cursor != 0 {
		t.Errorf("cursor should not go below 0, got %d", m.(TraceModel).Cursor)
	}

	m, _ = m.Update(key("G"))
	if m.(TraceModel).Cursor != 2 {
		t.Errorf("after G: Cursor = %d, want 2", m.(TraceModel).Cursor)
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestTraceModelView(t *testing.T) {
	m := NewTraceModel(traceLayout())
	view := m.View()

	for _, want := range []string{"Placement Trace", "second", "[3/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q", want)
		}
	}

	// Displaced step shows its preferred origin and the box that pushed it.
	m.Cursor = 1
	view = m.View()
	if !strings.Contains(view, "from (0, 0)") {
		t.Error("View() should show the displaced origin")
	}
	if !strings.Contains(view, "first") {
		t.Error("View() should resolve the pushing box's label")
	}
}

func TestTraceModelViewEmpty(t *testing.T) {
	m := NewTraceModel(layout.Layout{})
	if !strings.Contains(m.View(), "empty layout") {
		t.Error("View() of empty layout should say so")
	}
}
