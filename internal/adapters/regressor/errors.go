package regressor

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrLoad      = errors.New("model artifact load failed")
	ErrMalformed = errors.New("malformed model artifact")
	ErrShape     = errors.New("vector shape mismatch")
)

func newLoadError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
}

func newMalformedError(name, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformed, name, detail)
}

func newShapeError(name string, got, want int) error {
	return fmt.Errorf("%w: %s: got %d features, want %d", ErrShape, name, got, want)
}
