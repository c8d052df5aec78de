package place

// Box is an axis-aligned rectangle positioned on the canvas.
// X and Y are the top-left corner; all values share one caller-chosen unit.
// The Label is an opaque payload carried through placement unmodified.
type Box struct {
	ID    string
	Label string
	X, Y  float64
	W, H  float64
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }
