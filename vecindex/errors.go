package vecindex

import "errors"

var (
	// ErrDimensionMismatch is returned when a vector's dimension does not
	// match the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyVector is returned when an empty vector is offered for
	// insertion or search.
	ErrEmptyVector = errors.New("empty vector")

	// ErrCorruptSnapshot is returned when a snapshot file cannot be decoded.
	ErrCorruptSnapshot = errors.New("corrupt index snapshot")
)
