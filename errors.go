package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid reports a rejected input: missing, non numeric or non positive quantity or price.
	ErrInvalid = errors.New("invalid input")
	// ErrNotFound reports an edit targeting an unknown transaction id.
	ErrNotFound = errors.New("transaction not found")
)

// validateAmounts checks the numeric constraints shared by every record and edit.
func validateAmounts(quantity Quantity, price Money) error {
	var errs error
	if !quantity.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalid, quantity))
	}
	if !price.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("%w: price must be positive, got %s", ErrInvalid, price.value))
	}
	return errs
}
