package explain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrVectorLength = errors.New("vector length does not match schema")
	ErrAttribution  = errors.New("attribution failed")
)

func newVectorLengthError(got, want int) error {
	return fmt.Errorf("%w: got %d, want %d", ErrVectorLength, got, want)
}

func newAttributionError(err error) error {
	return fmt.Errorf("%w: %w", ErrAttribution, err)
}
