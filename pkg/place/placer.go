package place

import "fmt"

// Bounds describes the canvas extent used for preferred-position clamping.
type Bounds struct {
	Width  float64
	Height float64
}

// Step records how one box was resolved: where the caller wanted it, where
// it landed, and which committed boxes it was displaced against along the way.
type Step struct {
	Box        Box
	PreferredX float64
	PreferredY float64
	Against    []string
}

// Displaced reports whether the box moved from its preferred position.
func (s Step) Displaced() bool {
	return s.Box.X != s.PreferredX || s.Box.Y != s.PreferredY
}

// Placer owns the ordered history of committed boxes for one layout pass.
// Later boxes may be displaced relative to earlier ones, never vice versa.
// A Placer must not be shared between goroutines without external locking:
// Place reads and appends to the history as one logical step.
type Placer struct {
	padding float64
	bounds  *Bounds
	placed  []Box
	steps   []Step
}

// Option configures a Placer at construction.
type Option func(*Placer)

// WithBounds sets the canvas extent. Preferred positions are clamped into
// the canvas before the collision scan; displacement may still push a box
// past the bottom edge, which is a valid layout rather than an error.
func WithBounds(width, height float64) Option {
	return func(p *Placer) { p.bounds = &Bounds{Width: width, Height: height} }
}

// New creates a Placer with the given padding margin between boxes.
// It fails with ErrInvalidConfiguration if padding is negative or bounds
// are non-positive.
func New(padding float64, opts ...Option) (*Placer, error) {
	if padding < 0 {
		return nil, fmt.Errorf("%w: padding %v must be >= 0", ErrInvalidConfiguration, padding)
	}
	p := &Placer{padding: padding}
	for _, opt := range opts {
		opt(p)
	}
	if p.bounds != nil && (p.bounds.Width <= 0 || p.bounds.Height <= 0) {
		return nil, fmt.Errorf("%w: bounds %vx%v must be positive", ErrInvalidConfiguration, p.bounds.Width, p.bounds.Height)
	}
	return p, nil
}

// Padding returns the configured padding margin.
func (p *Placer) Padding() float64 { return p.padding }

// Place resolves and commits one box. The candidate starts at the preferred
// position (x, y); each committed box is tested in commit order, and on
// collision the candidate drops flush below the collider plus padding. The
// scan is a single forward pass. It fails with ErrInvalidDimension if w or h
// is not strictly positive; geometric placement itself always succeeds.
func (p *Placer) Place(label string, x, y, w, h float64) (Box, error) {
	return p.PlaceBox(Box{Label: label, X: x, Y: y, W: w, H: h})
}

// PlaceBox is Place for a caller-constructed box, preserving its ID.
func (p *Placer) PlaceBox(b Box) (Box, error) {
	if b.W <= 0 || b.H <= 0 {
		return Box{}, fmt.Errorf("%w: %vx%v must be positive", ErrInvalidDimension, b.W, b.H)
	}

	step := Step{PreferredX: b.X, PreferredY: b.Y}
	p.clamp(&b)

	for _, e := range p.placed {
		if Overlaps(b, e, p.padding) {
			b.Y = e.Bottom() + p.padding
			step.Against = append(step.Against, e.ID)
		}
	}

	step.Box = b
	p.placed = append(p.placed, b)
	p.steps = append(p.steps, step)
	return b, nil
}

// clamp pulls the preferred position inside the canvas bounds.
// Boxes larger than the canvas are pinned to the origin edge.
func (p *Placer) clamp(b *Box) {
	if p.bounds == nil {
		return
	}
	b.X = clampAxis(b.X, b.W, p.bounds.Width)
	b.Y = clampAxis(b.Y, b.H, p.bounds.Height)
}

func clampAxis(pos, size, extent float64) float64 {
	if pos < 0 {
		return 0
	}
	if limit := extent - size; pos > limit {
		if limit < 0 {
			return 0
		}
		return limit
	}
	return pos
}

// Placed returns the committed boxes in commit order. The slice is a copy;
// the history itself is immutable until Clear.
func (p *Placer) Placed() []Box {
	out := make([]Box, len(p.placed))
	copy(out, p.placed)
	return out
}

// Steps returns the placement trace in commit order.
func (p *Placer) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// Len returns the number of committed boxes.
func (p *Placer) Len() int { return len(p.placed) }

// Clear empties the history, starting a fresh layout pass. It is the only
// mutation other than Place.
func (p *Placer) Clear() {
	p.placed = p.placed[:0]
	p.steps = p.steps[:0]
}
