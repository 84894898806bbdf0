package product

import (
	"context"
	"fmt"

	"storefront-cart/internal/domain"
	productrepo "storefront-cart/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

type fetcher interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// LoadSnapshot fetches the catalog once and serves it from memory afterwards.
func LoadSnapshot(ctx context.Context, src fetcher) (*Service, error) {
	products, err := src.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(productrepo.NewMemory(products)), nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}
