package seed

import (
	"context"
	"errors"
	"testing"

	"storefront-cart/internal/domain"
)

type stubWriter struct {
	items  []domain.Product
	failAt int64
}

func (s *stubWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == s.failAt {
		return nil, errors.New("boom")
	}
	s.items = append(s.items, p)
	return &p, nil
}

func TestApply(t *testing.T) {
	w := &stubWriter{}
	n, err := Apply(context.Background(), w)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if n != len(DemoProducts()) || len(w.items) != n {
		t.Fatalf("expected %d products, got n=%d stored=%d", len(DemoProducts()), n, len(w.items))
	}
}

func TestApply_StopsOnError(t *testing.T) {
	w := &stubWriter{failAt: 2}
	n, err := Apply(context.Background(), w)
	if err == nil || n != 1 {
		t.Fatalf("expected failure after 1 product, got n=%d err=%v", n, err)
	}
}

func TestDemoProductsAreValid(t *testing.T) {
	seen := map[int64]bool{}
	for _, p := range DemoProducts() {
		if p.ID <= 0 || p.Price.IsNegative() {
			t.Fatalf("invalid demo product %+v", p)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate demo product id %d", p.ID)
		}
		seen[p.ID] = true
	}
}
