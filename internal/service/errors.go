package service

import (
	"errors"
	"fmt"
)

var (
	ErrRestaurantClosed = errors.New("restaurant is closed")
	ErrItemUnavailable  = errors.New("menu item is not available")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

// ValidationError is a user-facing rejection. The cart is left untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	ErrNotSignedIn        = &ValidationError{Reason: "please sign in to place an order"}
	ErrEmptyCart          = &ValidationError{Reason: "your cart is empty"}
	ErrCheckoutInProgress = &ValidationError{Reason: "a checkout is already in progress"}
)

// TransientError reports a failed order submission. It is not retried and
// the cart is left untouched.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("failed to place order, please try again: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}
