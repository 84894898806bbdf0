package product

import (
	"context"
	"sort"

	"storefront-cart/internal/domain"
)

// Memory serves a catalog that was fetched once. It never changes after
// construction.
type Memory struct {
	byID  map[int64]domain.Product
	order []int64
}

func NewMemory(products []domain.Product) *Memory {
	m := &Memory{byID: make(map[int64]domain.Product, len(products))}
	for _, p := range products {
		if _, ok := m.byID[p.ID]; !ok {
			m.order = append(m.order, p.ID)
		}
		m.byID[p.ID] = p
	}
	sort.Slice(m.order, func(i, j int) bool { return m.order[i] < m.order[j] })
	return m
}

func (m *Memory) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *Memory) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}
