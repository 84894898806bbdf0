package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Prices carry two fraction digits.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image,omitempty"`
	Rating      Rating          `json:"rating"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

type Rating struct {
	Rate  decimal.Decimal `json:"rate"`
	Count int             `json:"count"`
}

// PriceCents converts the price to integer cents, rounding half away from zero.
func (p Product) PriceCents() int64 {
	return p.Price.Shift(2).Round(0).IntPart()
}

// PriceFromCents is the inverse of PriceCents.
func PriceFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
