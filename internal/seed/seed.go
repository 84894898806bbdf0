package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
)

// ProductWriter stores catalog products.
type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// DemoProducts is a small offline catalog mirroring the public fake store.
func DemoProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Title:       "Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops",
			Price:       decimal.RequireFromString("109.95"),
			Category:    "men's clothing",
			Description: "Your perfect pack for everyday use and walks in the forest.",
			ImageURL:    "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Rating:      domain.Rating{Rate: decimal.RequireFromString("3.9"), Count: 120},
		},
		{
			ID:          2,
			Title:       "Mens Casual Premium Slim Fit T-Shirts",
			Price:       decimal.RequireFromString("22.30"),
			Category:    "men's clothing",
			Description: "Slim-fitting style, contrast raglan long sleeve.",
			ImageURL:    "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
			Rating:      domain.Rating{Rate: decimal.RequireFromString("4.1"), Count: 259},
		},
		{
			ID:          5,
			Title:       "John Hardy Women's Legends Naga Bracelet",
			Price:       decimal.RequireFromString("695.00"),
			Category:    "jewelery",
			Description: "From our Legends Collection, the Naga was inspired by the mythical water dragon.",
			ImageURL:    "https://fakestoreapi.com/img/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg",
			Rating:      domain.Rating{Rate: decimal.RequireFromString("4.6"), Count: 400},
		},
		{
			ID:          9,
			Title:       "WD 2TB Elements Portable External Hard Drive",
			Price:       decimal.RequireFromString("64.00"),
			Category:    "electronics",
			Description: "USB 3.0 and USB 2.0 compatibility, fast data transfers.",
			ImageURL:    "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg",
			Rating:      domain.Rating{Rate: decimal.RequireFromString("3.3"), Count: 203},
		},
	}
}

// Apply upserts the demo catalog. It is idempotent.
func Apply(ctx context.Context, repo ProductWriter) (int, error) {
	n := 0
	for _, p := range DemoProducts() {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return n, fmt.Errorf("upsert product %d: %w", p.ID, err)
		}
		n++
	}
	return n, nil
}
