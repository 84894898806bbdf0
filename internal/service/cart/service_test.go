package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront-cart/internal/cart"
	"storefront-cart/internal/domain"
	"storefront-cart/internal/events"
	"storefront-cart/internal/service/session"
)

type stubSessions struct {
	stores map[string]*cart.Store
}

func (s *stubSessions) Lookup(_ context.Context, id string) (*cart.Store, error) {
	store, ok := s.stores[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return store, nil
}

type stubCatalog struct {
	products map[int64]domain.Product
	err      error
	calls    int
}

func (s *stubCatalog) Get(_ context.Context, id int64) (*domain.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type stubPublisher struct {
	events []events.CartFinalized
	err    error
}

func (s *stubPublisher) PublishCartFinalized(_ context.Context, ev events.CartFinalized) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newTestService() (*Service, *cart.Store, *stubCatalog, *stubPublisher) {
	store := cart.New()
	catalog := &stubCatalog{products: map[int64]domain.Product{
		1: {ID: 1, Title: "Backpack", Price: price("19.99")},
		2: {ID: 2, Title: "Tee", Price: price("5.00")},
		3: {ID: 3, Title: "Ring", Price: price("1200.50")},
	}}
	pub := &stubPublisher{}
	svc := New(&stubSessions{stores: map[string]*cart.Store{"sess": store}}, catalog, pub, "$", zerolog.Nop())
	return svc, store, catalog, pub
}

func TestServiceAdd(t *testing.T) {
	svc, store, _, _ := newTestService()

	view, err := svc.Add(context.Background(), "sess", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ItemCount != 1 || !view.Total.Equal(price("19.99")) || view.FormattedTotal != "$19.99" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if !store.Contains(1) {
		t.Fatalf("expected product in store")
	}
}

func TestServiceAddUnknownSession(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.Add(context.Background(), "other", 1)
	if !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}
}

func TestServiceAddUnknownProduct(t *testing.T) {
	svc, store, _, _ := newTestService()
	_, err := svc.Add(context.Background(), "sess", 99)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("store must stay empty")
	}
}

func TestServiceAddCatalogError(t *testing.T) {
	svc, _, catalog, _ := newTestService()
	catalog.err = errors.New("db down")
	_, err := svc.Add(context.Background(), "sess", 1)
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestServiceAddDuplicate(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.Add(context.Background(), "sess", 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.Add(context.Background(), "sess", 1)
	if !errors.Is(err, domain.ErrAlreadyInCart) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestServiceRemove(t *testing.T) {
	svc, _, catalog, _ := newTestService()
	ctx := context.Background()
	for _, id := range []int64{1, 2} {
		if _, err := svc.Add(ctx, "sess", id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	lookups := catalog.calls

	view, err := svc.Remove(ctx, "sess", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ItemCount != 1 || !view.Total.Equal(price("5.00")) {
		t.Fatalf("unexpected view: %+v", view)
	}
	if catalog.calls != lookups {
		t.Fatalf("remove must not consult the catalog")
	}

	_, err = svc.Remove(ctx, "sess", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceRemoveKeepsPriceFromAddTime(t *testing.T) {
	svc, _, catalog, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Add(ctx, "sess", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	catalog.products[1] = domain.Product{ID: 1, Title: "Backpack", Price: price("25.00")}

	view, err := svc.Remove(ctx, "sess", 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !view.Total.IsZero() {
		t.Fatalf("expected zero total after removal, got %s", view.Total)
	}
}

func TestServiceToggle(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	view, in, err := svc.Toggle(ctx, "sess", 2)
	if err != nil || !in || view.ItemCount != 1 {
		t.Fatalf("expected product added, got in=%v view=%+v err=%v", in, view, err)
	}
	view, in, err = svc.Toggle(ctx, "sess", 2)
	if err != nil || in || view.ItemCount != 0 {
		t.Fatalf("expected product removed, got in=%v view=%+v err=%v", in, view, err)
	}
	_, _, err = svc.Toggle(ctx, "sess", 42)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestServiceClear(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()
	for _, id := range []int64{1, 2, 3} {
		if _, err := svc.Add(ctx, "sess", id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}

	view, err := svc.Clear(ctx, "sess")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if view.ItemCount != 0 || !view.Total.IsZero() || view.FormattedTotal != "$0.00" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if store.Len() != 0 || !store.Total().IsZero() {
		t.Fatalf("store not cleared")
	}
}

func TestServiceFinalize(t *testing.T) {
	svc, store, _, pub := newTestService()
	ctx := context.Background()
	for _, id := range []int64{1, 3} {
		if _, err := svc.Add(ctx, "sess", id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}

	summary, err := svc.Finalize(ctx, "sess")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if summary.ItemCount != 2 || summary.FormattedTotal != "$1,220.49" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(pub.events) != 1 || len(pub.events[0].Items) != 2 || !pub.events[0].Total.Equal(price("1220.49")) {
		t.Fatalf("unexpected events: %+v", pub.events)
	}
	if store.Len() != 0 {
		t.Fatalf("expected cart emptied after finalize")
	}
}

func TestServiceFinalizeEmptyCart(t *testing.T) {
	svc, _, _, pub := newTestService()

	summary, err := svc.Finalize(context.Background(), "sess")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if summary.ItemCount != 0 || summary.FormattedTotal != "$0.00" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(pub.events) != 0 {
		t.Fatalf("empty cart must not be announced")
	}
}

func TestServiceFinalizePublishErrorKeepsCart(t *testing.T) {
	svc, store, _, pub := newTestService()
	ctx := context.Background()
	if _, err := svc.Add(ctx, "sess", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	pub.err = errors.New("broker down")

	if _, err := svc.Finalize(ctx, "sess"); err == nil {
		t.Fatalf("expected publish error")
	}
	if !store.Contains(1) {
		t.Fatalf("cart must be kept when finalize fails")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":        "$0.00",
		"19.99":    "$19.99",
		"1234.5":   "$1,234.50",
		"-3":       "-$3.00",
		"1000000":  "$1,000,000.00",
		"0.005":    "$0.01",
	}
	for in, want := range cases {
		if got := FormatAmount("$", price(in)); got != want {
			t.Fatalf("FormatAmount(%s) = %q, want %q", in, got, want)
		}
	}
}
