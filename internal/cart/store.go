// Package cart holds the in-memory cart of a single shopping session.
package cart

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
)

// Item is a product as it was when it was added to the cart.
type Item struct {
	Product domain.Product
	AddedAt time.Time
}

// Store is the set of products selected in one session. Each product id is
// held at most once and the total is always derived from the held items.
// A Store is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items []Item
	index map[int64]int
	now   func() time.Time
}

func New() *Store {
	return &Store{
		index: make(map[int64]int),
		now:   time.Now,
	}
}

// Add places p in the cart. It fails without changing the cart when p is
// malformed or already present.
func (s *Store) Add(p domain.Product) error {
	if err := validate(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[p.ID]; ok {
		return errors.Wrapf(domain.ErrAlreadyInCart, "add product %d", p.ID)
	}
	s.index[p.ID] = len(s.items)
	s.items = append(s.items, Item{Product: p, AddedAt: s.now().UTC()})
	return nil
}

// Remove takes the product with the given id out of the cart and returns the
// removed item.
func (s *Store) Remove(productID int64) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(productID)
}

// Toggle removes p when it is in the cart and adds it otherwise. It reports
// whether p is in the cart afterwards.
func (s *Store) Toggle(p domain.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[p.ID]; ok {
		if _, err := s.removeLocked(p.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := validate(p); err != nil {
		return false, err
	}
	s.index[p.ID] = len(s.items)
	s.items = append(s.items, Item{Product: p, AddedAt: s.now().UTC()})
	return true, nil
}

func (s *Store) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.index[productID]
	return ok
}

// Total is the sum of the prices of the held items.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Product.Price)
	}
	return total
}

// Items returns a copy of the held items in the order they were added.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.index = make(map[int64]int)
}

func (s *Store) removeLocked(productID int64) (Item, error) {
	pos, ok := s.index[productID]
	if !ok {
		return Item{}, &NotFoundError{ProductID: productID}
	}
	removed := s.items[pos]

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, productID)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].Product.ID] = i
	}
	return removed, nil
}

func validate(p domain.Product) error {
	if p.ID <= 0 {
		return &InvalidProductError{ProductID: p.ID, Reason: "id must be positive"}
	}
	if p.Price.IsNegative() {
		return &InvalidProductError{ProductID: p.ID, Reason: "price must not be negative"}
	}
	return nil
}
