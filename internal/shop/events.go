package shop

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// Orders topic; partition key = order id, so every event of one order keeps its order.
const TopicOrders = "shop.orders"

func PartitionKey(orderID string) []byte { return []byte(orderID) }

// Notifier is told about order lifecycle changes after they are stored.
type Notifier interface {
	OrderPlaced(ctx context.Context, o Order)
	OrderStatusChanged(ctx context.Context, o Order, from Status)
}

// Notifiers fans one event out to several notifiers.
type Notifiers []Notifier

func (ns Notifiers) OrderPlaced(ctx context.Context, o Order) {
	for _, n := range ns {
		n.OrderPlaced(ctx, o)
	}
}

func (ns Notifiers) OrderStatusChanged(ctx context.Context, o Order, from Status) {
	for _, n := range ns {
		n.OrderStatusChanged(ctx, o, from)
	}
}

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID   string          `json:"order_id"`
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	OrderDate time.Time       `json:"order_date"`
	ShipTo    string          `json:"shipping_address"`
}

type OrderStatusChangedPayload struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	From    Status `json:"from"`
	To      Status `json:"to"`
}
