package scene

import "strings"

// Measurer estimates the rendered size of a text label. The placement engine
// treats measurement as an opaque oracle, so callers with real font metrics
// can inject their own implementation.
type Measurer interface {
	Measure(label string) (w, h float64)
}

// HeuristicMeasurer estimates text extents from character counts. It knows
// nothing about fonts; the constants approximate a 14pt sans-serif at 96 DPI
// and exist only so unsized boxes get plausible footprints.
type HeuristicMeasurer struct {
	CharWidth  float64 // average glyph advance per character
	LineHeight float64 // height of one text line
	InsetX     float64 // horizontal padding inside the box
	InsetY     float64 // vertical padding inside the box
}

// DefaultMeasurer returns the heuristic measurer with default constants.
func DefaultMeasurer() HeuristicMeasurer {
	return HeuristicMeasurer{CharWidth: 8, LineHeight: 20, InsetX: 12, InsetY: 8}
}

// Measure estimates the box size for label. Multi-line labels are sized to
// their longest line; the result is always strictly positive.
func (m HeuristicMeasurer) Measure(label string) (w, h float64) {
	lines := strings.Split(label, "\n")
	longest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > longest {
			longest = n
		}
	}
	if longest == 0 {
		longest = 1
	}
	w = float64(longest)*m.CharWidth + 2*m.InsetX
	h = float64(len(lines))*m.LineHeight + 2*m.InsetY
	return w, h
}

var _ Measurer = HeuristicMeasurer{}
