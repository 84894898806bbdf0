package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
)

type stubFetcher struct {
	products []domain.Product
	err      error
}

func (s *stubFetcher) ListProducts(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

type stubProductRepo struct {
	items  []domain.Product
	failID int64
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == s.failID {
		return nil, errors.New("write failed")
	}
	s.items = append(s.items, p)
	return &p, nil
}

func catalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Backpack", Price: decimal.RequireFromString("109.95")},
		{ID: 2, Title: "Tee", Price: decimal.RequireFromString("22.30")},
		{ID: 3, Title: "Jacket", Price: decimal.RequireFromString("55.99")},
	}
}

func TestImporter_Run(t *testing.T) {
	repo := &stubProductRepo{}
	imp := New(&stubFetcher{products: catalog()}, repo, zerolog.Nop())

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 || len(repo.items) != 3 {
		t.Fatalf("expected 3 products imported, got count=%d stored=%d", count, len(repo.items))
	}
	if repo.items[0].Title != "Backpack" || !repo.items[0].Price.Equal(decimal.RequireFromString("109.95")) {
		t.Fatalf("unexpected product data: %+v", repo.items[0])
	}
}

func TestImporter_FetchError(t *testing.T) {
	imp := New(&stubFetcher{err: errors.New("offline")}, &stubProductRepo{}, zerolog.Nop())

	count, err := imp.Run(context.Background())
	if err == nil || count != 0 {
		t.Fatalf("expected fetch error, got count=%d err=%v", count, err)
	}
}

func TestImporter_StopsAtFailedWrite(t *testing.T) {
	repo := &stubProductRepo{failID: 2}
	imp := New(&stubFetcher{products: catalog()}, repo, zerolog.Nop())

	count, err := imp.Run(context.Background())
	if err == nil {
		t.Fatalf("expected write error")
	}
	if count != 1 {
		t.Fatalf("expected 1 product stored before failure, got %d", count)
	}
}

func TestImporter_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	imp := New(&stubFetcher{products: catalog()}, &stubProductRepo{}, zerolog.Nop())

	count, err := imp.Run(ctx)
	if !errors.Is(err, context.Canceled) || count != 0 {
		t.Fatalf("expected cancellation, got count=%d err=%v", count, err)
	}
}
