package place

import "errors"

// Sentinel errors for placement operations.
var (
	// ErrInvalidConfiguration is returned when a Placer is constructed with
	// bad settings (negative padding, non-positive canvas bounds).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidDimension is returned when a box with non-positive width or
	// height is submitted. The placement history is left untouched.
	ErrInvalidDimension = errors.New("invalid dimension")
)
