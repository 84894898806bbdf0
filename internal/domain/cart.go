package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is the presentation view of one item held in a cart.
type CartLine struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Category  string          `json:"category,omitempty"`
	ImageURL  string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	AddedAt   time.Time       `json:"addedAt"`
}

// CartView is what the storefront renders for a session's cart.
type CartView struct {
	SessionID      string          `json:"sessionId"`
	Lines          []CartLine      `json:"lineItems"`
	ItemCount      int             `json:"itemCount"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formattedTotal"`
}
