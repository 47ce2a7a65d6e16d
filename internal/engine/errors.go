package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrOffsetOutOfRange indicates an offset that does not resolve to a
	// position in the current document.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrInvalidEdit indicates an edit with an unknown kind or an empty
	// insertion.
	ErrInvalidEdit = errors.New("invalid edit")
)
