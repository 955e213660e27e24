package schema

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrEmptySchema     = errors.New("schema has no columns")
	ErrDuplicateColumn = errors.New("duplicate schema column")
)

func newDuplicateColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateColumn, column)
}
