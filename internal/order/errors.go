package order

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrUnknownStore        = errors.New("unknown store")
	ErrDuplicateSubmission = errors.New("order already submitted for this session")
	ErrOrderNotFound       = errors.New("order not found")
	ErrPersistenceFailure  = errors.New("persistence failure")
)

// UnknownMenuItemError identifies the cart line whose temp_id does not
// resolve against the session's ephemeral menu.
type UnknownMenuItemError struct {
	TempID string
}

func (e *UnknownMenuItemError) Error() string {
	return fmt.Sprintf("unknown menu item %q", e.TempID)
}

// InvalidQuantityError identifies a cart line with a non-positive quantity.
type InvalidQuantityError struct {
	TempID   string
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for item %q", e.Quantity, e.TempID)
}
