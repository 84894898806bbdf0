package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront-cart/internal/cart"
	"storefront-cart/internal/domain"
	"storefront-cart/internal/events"
)

var ErrProductNotFound = errors.New("product not found")

type Service struct {
	sessions  sessionStore
	catalog   productCatalog
	publisher events.Publisher
	currency  string
	logger    zerolog.Logger
}

type sessionStore interface {
	Lookup(ctx context.Context, id string) (*cart.Store, error)
}

type productCatalog interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

func New(sessions sessionStore, catalog productCatalog, publisher events.Publisher, currencySymbol string, logger zerolog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		sessions:  sessions,
		catalog:   catalog,
		publisher: publisher,
		currency:  currencySymbol,
		logger:    logger,
	}
}

func (s *Service) Get(ctx context.Context, sessionID string) (*domain.CartView, error) {
	store, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, store.Items()), nil
}

func (s *Service) Add(ctx context.Context, sessionID string, productID int64) (*domain.CartView, error) {
	store, product, err := s.resolve(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}
	if err := store.Add(*product); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("session_id", sessionID).Int64("product_id", productID).Msg("cart: add")
	return s.view(sessionID, store.Items()), nil
}

// Remove takes a product out of the cart. The catalog is not consulted: the
// price subtracted is the one the item was added with.
func (s *Service) Remove(ctx context.Context, sessionID string, productID int64) (*domain.CartView, error) {
	store, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := store.Remove(productID); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("session_id", sessionID).Int64("product_id", productID).Msg("cart: remove")
	return s.view(sessionID, store.Items()), nil
}

// Toggle adds the product when absent and removes it when present. It reports
// whether the product is in the cart afterwards.
func (s *Service) Toggle(ctx context.Context, sessionID string, productID int64) (*domain.CartView, bool, error) {
	store, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if store.Contains(productID) {
		if _, err := store.Remove(productID); err != nil {
			return nil, true, err
		}
		return s.view(sessionID, store.Items()), false, nil
	}

	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	in, err := store.Toggle(*product)
	if err != nil {
		return nil, false, err
	}
	return s.view(sessionID, store.Items()), in, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) (*domain.CartView, error) {
	store, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store.Clear()
	return s.view(sessionID, nil), nil
}

// Finalize returns the cart as it was finalized, announces it and empties the
// cart. When the announcement fails the cart is left untouched.
func (s *Service) Finalize(ctx context.Context, sessionID string) (*domain.CartView, error) {
	store, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items := store.Items()
	summary := s.view(sessionID, items)
	if len(items) == 0 {
		return summary, nil
	}

	ev := events.CartFinalized{SessionID: sessionID, Total: summary.Total}
	for _, it := range items {
		ev.Items = append(ev.Items, events.FinalizedItem{
			ProductID: it.Product.ID,
			Title:     it.Product.Title,
			Price:     it.Product.Price,
		})
	}
	if err := s.publisher.PublishCartFinalized(ctx, ev); err != nil {
		return nil, fmt.Errorf("finalize cart: %w", err)
	}

	// Only the finalized items leave the cart.
	for _, it := range items {
		_, _ = store.Remove(it.Product.ID)
	}
	s.logger.Info().
		Str("session_id", sessionID).
		Int("items", len(items)).
		Str("total", summary.Total.StringFixed(2)).
		Msg("cart: finalized")
	return summary, nil
}

func (s *Service) resolve(ctx context.Context, sessionID string, productID int64) (*cart.Store, *domain.Product, error) {
	store, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	return store, product, nil
}

func (s *Service) product(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *Service) view(sessionID string, items []cart.Item) *domain.CartView {
	total := decimal.Zero
	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		total = total.Add(it.Product.Price)
		lines = append(lines, domain.CartLine{
			ProductID: it.Product.ID,
			Title:     it.Product.Title,
			Category:  it.Product.Category,
			ImageURL:  it.Product.ImageURL,
			Price:     it.Product.Price,
			AddedAt:   it.AddedAt,
		})
	}
	return &domain.CartView{
		SessionID:      sessionID,
		Lines:          lines,
		ItemCount:      len(lines),
		Total:          total,
		FormattedTotal: FormatAmount(s.currency, total),
	}
}

// FormatAmount renders an amount with thousands separators and two decimals,
// e.g. "$1,234.50".
func FormatAmount(symbol string, amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + symbol + humanize.FormatFloat("#,###.##", amount.Round(2).InexactFloat64())
}
