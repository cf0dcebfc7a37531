package cart

import "errors"

var (
	// ErrInvalidDescriptor is returned by Add when the product lacks a name
	// or carries a negative price. The cart is left untouched.
	ErrInvalidDescriptor = errors.New("invalid product descriptor")

	// ErrInvalidQuantity is returned by Add for quantities below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1 and at most 1073741824")

	// ErrCorrupt marks persisted data that could not be read in full.
	// Decode still returns whatever items were recoverable.
	ErrCorrupt = errors.New("corrupt cart data")
)
