package octree

import "errors"

var (
	// ErrInvalidConfiguration is returned when maxColors is below 1 or
	// colorBits is outside [1, 8].
	ErrInvalidConfiguration = errors.New("octree: invalid configuration")

	// ErrEmptyInput reports that no pixels were ingested.
	ErrEmptyInput = errors.New("octree: empty input")

	// ErrInvalidAccess is the panic value for reading children of a leaf or
	// the average color of a branch.
	ErrInvalidAccess = errors.New("octree: invalid node access")
)
