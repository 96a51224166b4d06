package kafka

import (
	"context"
	"time"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type publisher interface {
	Publish(key, value []byte, headers ...kafka.Header) error
}

// OrderEvents publishes order lifecycle changes as v1 envelopes on shop.TopicOrders.
type OrderEvents struct {
	Producer publisher
	Service  string
	Log      logrus.FieldLogger
}

func (e *OrderEvents) OrderPlaced(ctx context.Context, o shop.Order) {
	e.publish(o.ID, shop.EventOrderPlaced, shop.OrderPlacedPayload{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Username:  o.Username,
		Items:     o.Items,
		Total:     o.Total,
		OrderDate: o.OrderDate,
		ShipTo:    o.ShippingAddress,
	})
}

func (e *OrderEvents) OrderStatusChanged(ctx context.Context, o shop.Order, from shop.Status) {
	e.publish(o.ID, shop.EventOrderStatusChanged, shop.OrderStatusChangedPayload{
		OrderID: o.ID,
		UserID:  o.UserID,
		From:    from,
		To:      o.Status,
	})
}

func (e *OrderEvents) publish(orderID, eventType string, payload any) {
	ev := shop.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      e.Service,
		CorrelationID: orderID,
		Payload:       MustMarshal(payload),
	}
	err := e.Producer.Publish(shop.PartitionKey(orderID), MustMarshal(ev),
		kafka.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafka.Header{Key: "x-event-version", Value: []byte("1")},
	)
	if err != nil {
		e.Log.WithError(err).WithFields(logrus.Fields{"order_id": orderID, "event": eventType}).Warn("publish order event")
	}
}
