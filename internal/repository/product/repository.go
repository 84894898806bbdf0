package product

import (
	"context"

	"storefront-cart/internal/domain"
)

// Repository is the read side of the catalog.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}
