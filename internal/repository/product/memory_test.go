package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-cart/internal/domain"
)

func TestMemory_ListSortedByID(t *testing.T) {
	m := NewMemory([]domain.Product{
		{ID: 3, Title: "c"},
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
	})

	list, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].Title, list[1].Title, list[2].Title})
}

func TestMemory_GetByID(t *testing.T) {
	m := NewMemory([]domain.Product{{ID: 1, Title: "a", Price: decimal.NewFromInt(5)}})

	p, err := m.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a", p.Title)

	_, err = m.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemory_LaterDuplicateWins(t *testing.T) {
	m := NewMemory([]domain.Product{{ID: 1, Title: "old"}, {ID: 1, Title: "new"}})

	list, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Title)
}
