package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/mlehnert/placard/pkg/layout"
)

// RenderDOT converts a layout's displacement provenance into Graphviz DOT.
// Each box becomes a node; an edge a -> b means b was displaced against a.
// Boxes that kept their preferred position are drawn with a plain outline,
// displaced boxes with an amber fill.
func RenderDOT(l layout.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph placement {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, b := range l.Boxes {
		label := fmt.Sprintf("%s\n(%.1f, %.1f)", b.Label, b.X, b.Y)
		if b.Displaced {
			fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#fff4e0\"];\n", b.ID, label)
		} else {
			fmt.Fprintf(&buf, "  %q [label=%q];\n", b.ID, label)
		}
	}

	buf.WriteString("\n")
	for _, b := range l.Boxes {
		for _, against := range b.Against {
			fmt.Fprintf(&buf, "  %q -> %q;\n", against, b.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderProvenanceSVG renders a DOT provenance graph to SVG using Graphviz.
func RenderProvenanceSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
