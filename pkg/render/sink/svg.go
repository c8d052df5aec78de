package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mlehnert/placard/pkg/layout"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	ghosts   bool
	grid     float64
	fontSize float64
}

// WithGhosts draws a dashed outline at each displaced box's preferred
// position, connected to the resolved position. Useful when reviewing why
// the engine moved things.
func WithGhosts() SVGOption { return func(r *svgRenderer) { r.ghosts = true } }

// WithGrid draws light guide lines every step units.
func WithGrid(step float64) SVGOption { return func(r *svgRenderer) { r.grid = step } }

// WithFontSize sets the label font size in canvas units (default 14).
func WithFontSize(size float64) SVGOption { return func(r *svgRenderer) { r.fontSize = size } }

// RenderSVG renders the layout as a standalone SVG document. Boxes that were
// displaced past the canvas bottom extend the viewBox so nothing is clipped.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{fontSize: 14}
	for _, opt := range opts {
		opt(&r)
	}

	height := canvasHeight(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, height, l.Width, height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#fcfcfa" stroke="#d0d0c8"/>`+"\n", l.Width, l.Height)

	if r.grid > 0 {
		renderGrid(&buf, l.Width, l.Height, r.grid)
	}
	if r.ghosts {
		for _, b := range l.Boxes {
			if b.Displaced {
				renderGhost(&buf, b)
			}
		}
	}
	for _, b := range l.Boxes {
		renderBox(&buf, b, r.fontSize)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// canvasHeight returns the frame height extended past any overflowing box.
func canvasHeight(l layout.Layout) float64 {
	height := l.Height
	for _, b := range l.Boxes {
		if bottom := b.Y + b.H + l.Padding; bottom > height {
			height = bottom
		}
	}
	return height
}

func renderGrid(buf *bytes.Buffer, width, height, step float64) {
	buf.WriteString(`  <g stroke="#e8e8e2" stroke-width="0.5">` + "\n")
	for x := step; x < width; x += step {
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f"/>`+"\n", x, x, height)
	}
	for y := step; y < height; y += step {
		fmt.Fprintf(buf, `    <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", y, width, y)
	}
	buf.WriteString("  </g>\n")
}

func renderGhost(buf *bytes.Buffer, b layout.Box) {
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#b9b9b0" stroke-dasharray="4 3"/>`+"\n",
		b.PreferredX, b.PreferredY, b.W, b.H)
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#b9b9b0" stroke-dasharray="2 2"/>`+"\n",
		b.PreferredX+b.W/2, b.PreferredY+b.H/2, b.X+b.W/2, b.Y+b.H/2)
}

func renderBox(buf *bytes.Buffer, b layout.Box, fontSize float64) {
	fill := "#ffffff"
	if b.Displaced {
		fill = "#fff4e0"
	}
	fmt.Fprintf(buf, `  <g id="box-%s">`+"\n", escape(b.ID))
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s" stroke="#444444"/>`+"\n",
		b.X, b.Y, b.W, b.H, fill)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		b.X+b.W/2, b.Y+b.H/2, fontSize, escape(firstLine(b.Label)))
	buf.WriteString("  </g>\n")
}

// firstLine truncates multi-line labels; SVG text elements do not wrap.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
