package notify

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrDelivery = errors.New("ledger delivery failed")
)

func newStatusError(status int) error {
	return fmt.Errorf("%w: unexpected status %d", ErrDelivery, status)
}
