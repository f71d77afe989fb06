package mathjax

import "errors"

// Sentinel errors for library operations.
var (
	// Host protocol errors.
	ErrMalformedInput = errors.New("malformed preprocessor input")
	ErrMissingBook    = errors.New("preprocessor input has no book")
	ErrInvalidVersion = errors.New("invalid mdbook version")
	ErrApplyContent   = errors.New("failed to write chapter content")

	// Option validation errors.
	ErrEmptyMarker = errors.New("markers cannot be empty")
)
