// Package sink renders a layout into output formats.
//
// Each sink takes a [layout.Layout] plus functional options:
//
//   - [RenderSVG]: the canvas with placed boxes and labels, optionally with
//     ghost outlines at displaced boxes' preferred positions and a grid.
//   - [RenderJSON]: the layout document itself.
//   - [RenderPNG], [RenderPDF]: the SVG converted via rsvg-convert.
//   - [RenderDOT], [RenderProvenanceSVG]: the displacement provenance graph
//     (which box was pushed by which) as Graphviz output.
package sink
