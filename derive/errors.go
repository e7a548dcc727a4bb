package derive

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken is returned when a token resembles a known shape
	// but fails structural validation.
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnrecognizedShape is returned when a token matches no known shape.
	ErrUnrecognizedShape = errors.New("unrecognized token shape")
	// ErrSlice is returned when an opaque identifier is too short to slice.
	// It always matches ErrMalformedToken too.
	ErrSlice = fmt.Errorf("%w: identifier too short to slice", ErrMalformedToken)
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedToken}, args...)...)
}
