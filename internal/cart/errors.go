package cart

import (
	"errors"
	"fmt"
)

var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// ValidationError is returned by AddItem for a non-positive quantity.
type ValidationError struct {
	Code     int64
	Quantity int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid quantity %d for item %d: %v", e.Quantity, e.Code, ErrInvalidQuantity)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidQuantity
}
