package place

import "testing"

func TestBoxEdges(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 30, H: 40}

	if got, want := b.Right(), 40.0; got != want {
		t.Errorf("Right() = %v, want %v", got, want)
	}
	if got, want := b.Bottom(), 60.0; got != want {
		t.Errorf("Bottom() = %v, want %v", got, want)
	}
	if got, want := b.CenterX(), 25.0; got != want {
		t.Errorf("CenterX() = %v, want %v", got, want)
	}
	if got, want := b.CenterY(), 40.0; got != want {
		t.Errorf("CenterY() = %v, want %v", got, want)
	}
}
