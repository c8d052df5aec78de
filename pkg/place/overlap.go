package place

// Overlaps reports whether a and b, each inflated by padding on all sides,
// intersect on both axes. Boxes whose edges are exactly padding apart are
// considered separated, so resolved layouts sit flush at the padding margin.
// The test is symmetric and total; a box always overlaps itself.
func Overlaps(a, b Box, padding float64) bool {
	separated := a.Right()+padding <= b.X ||
		b.Right()+padding <= a.X ||
		a.Bottom()+padding <= b.Y ||
		b.Bottom()+padding <= a.Y
	return !separated
}
