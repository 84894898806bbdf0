package cart

import (
	"fmt"

	"storefront-cart/internal/domain"
)

// InvalidProductError reports a product that cannot be placed in a cart.
type InvalidProductError struct {
	ProductID int64
	Reason    string
}

func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product %d: %s", e.ProductID, e.Reason)
}

func (e *InvalidProductError) Is(target error) bool {
	return target == domain.ErrInvalidProduct
}

// NotFoundError reports a product id that is not held in the cart.
type NotFoundError struct {
	ProductID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not in cart", e.ProductID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == domain.ErrNotFound
}
