package services

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to the HTTP layer. Controllers translate them into
// flash-message redirects or JSON error payloads; none of them is a server
// fault.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrOutOfStock      = errors.New("out of stock")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidLogin    = errors.New("invalid email or password")
	ErrEmailTaken      = errors.New("email already registered")
)

// InsufficientStockError reports a requested quantity that exceeds the
// currently available stock of a product.
type InsufficientStockError struct {
	Product   string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: only %d left", e.Product, e.Available)
}

// Message is the user-facing flash text, matching the storefront wording.
func (e *InsufficientStockError) Message() string {
	return fmt.Sprintf("Not enough stock. Only %d left.", e.Available)
}
