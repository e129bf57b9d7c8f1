package cart

import (
	"errors"
	"fmt"
)

var (
	ErrNoSize      = errors.New("no size selected")
	ErrBadQuantity = errors.New("quantity must be at least 1")
	ErrNotInCart   = errors.New("item not found in cart")
)

// SyncError reports a failed backend mutation. Local cart state is left
// untouched when one is returned.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("cart sync %s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
