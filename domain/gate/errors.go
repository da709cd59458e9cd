package gate

import "errors"

var (
	// ErrEmptySample is returned by Sample.Validate for a zero-length sample.
	ErrEmptySample = errors.New("empty sample")
	// ErrInvalidValue is returned by Sample.Validate when a value is NaN,
	// infinite, or negative.
	ErrInvalidValue = errors.New("invalid sample value: NaN, infinite, or negative")
)
