package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Envelope struct {
	EventName    string        `json:"eventName"`
	EventVersion int           `json:"eventVersion"`
	EventID      string        `json:"eventId"`
	Producer     string        `json:"producer"`
	PartitionKey string        `json:"partitionKey"`
	OccurredAt   time.Time     `json:"occurredAt"`
	Payload      CartFinalized `json:"payload"`
}

// CartFinalized is emitted when a shopper finalizes a cart.
type CartFinalized struct {
	SessionID string          `json:"sessionId"`
	Items     []FinalizedItem `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

type FinalizedItem struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
}

func newCartFinalizedEnvelope(ev CartFinalized, producer string, occurredAt time.Time) Envelope {
	if producer == "" {
		producer = storefrontProducer
	}
	return Envelope{
		EventName:    CartFinalizedEventName,
		EventVersion: cartFinalizedVersion,
		EventID:      uuid.NewString(),
		Producer:     producer,
		PartitionKey: ev.SessionID,
		OccurredAt:   occurredAt,
		Payload:      ev,
	}
}
