package services

import (
	"errors"
	"fmt"

	"checkout-service/models"

	"github.com/google/uuid"
)

// The errors below are the expected, recoverable business conditions this
// service surfaces to its callers. Anything else coming out of the
// persistence layer is infrastructure failure and passes through untouched.
var (
	// ErrEmptyCart is returned when checkout is attempted on an absent or
	// empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrConcurrencyConflict means the commit pass lost a race with another
	// checkout; the whole attempt was rolled back and may be retried once.
	ErrConcurrencyConflict = errors.New("checkout conflicted with a concurrent purchase")
)

// NotFoundError reports an absent product, cart, or cart item.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InsufficientStockError carries the remaining stock so callers can display
// a corrective message ("only N units remain").
type InsufficientStockError struct {
	ProductID uuid.UUID
	Title     string
	Requested int
	Remaining int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, %d remaining", e.Title, e.Requested, e.Remaining)
}

// ProductUnavailableError reports a product that exists but is not in the
// approved state.
type ProductUnavailableError struct {
	ProductID uuid.UUID
	Title     string
	Status    models.ProductStatus
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %q is not available for purchase (status %s)", e.Title, e.Status)
}
