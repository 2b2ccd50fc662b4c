package collection

import "errors"

var (
	// ErrEmptyCollection indicates indexing or rotating a collection with no degrees.
	ErrEmptyCollection = errors.New("collection: empty collection")
	// ErrOutOfRange indicates an index outside [0, n) of a non-cyclic collection.
	ErrOutOfRange = errors.New("collection: index out of range")
	// ErrTypeMismatch indicates set algebra between different container types.
	ErrTypeMismatch = errors.New("collection: mismatched collection types")
	// ErrNotInstanced indicates resolving a pitch without a reference pitch.
	ErrNotInstanced = errors.New("collection: no reference pitch")
)
