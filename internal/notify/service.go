// Package notify turns order events into customer notifications.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkax "github.com/ariefcatur/unicor-shoes/internal/kafka"
	"github.com/ariefcatur/unicor-shoes/internal/money"
	"github.com/ariefcatur/unicor-shoes/internal/redisx"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Deduper interface {
	First(ctx context.Context, eventID string) (bool, error)
	Forget(ctx context.Context, eventID string) error
}

type Feed interface {
	Push(ctx context.Context, userID string, n redisx.Notification) error
}

type Service struct {
	Dedup Deduper
	Feed  Feed
	Log   logrus.FieldLogger
}

// HandleOrderEvent is installed as the consumer handler for shop.TopicOrders.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env shop.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// poison message: log and let the offset advance
		s.Log.WithError(err).WithField("offset", m.Offset).Warn("undecodable event")
		return nil
	}

	var (
		userID string
		n      redisx.Notification
	)
	switch env.EventType {
	case shop.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[shop.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		userID = p.UserID
		n = redisx.Notification{
			OrderID: p.OrderID,
			Status:  string(shop.StatusPending),
			Message: fmt.Sprintf("Recibimos tu pedido %s por %s", p.OrderID, money.FormatPrice(p.Total)),
		}
	case shop.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[shop.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		userID = p.UserID
		n = redisx.Notification{
			OrderID: p.OrderID,
			Status:  string(p.To),
			Message: fmt.Sprintf("Tu pedido %s ahora está: %s", p.OrderID, p.To.Label()),
		}
	default:
		return nil
	}

	first, err := s.Dedup.First(ctx, env.EventID)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	n.CreatedAt = env.OccurredAt
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := s.Feed.Push(ctx, userID, n); err != nil {
		// allow the redelivery to try again
		if ferr := s.Dedup.Forget(ctx, env.EventID); ferr != nil {
			s.Log.WithError(ferr).WithField("event_id", env.EventID).Warn("forget dedup key")
		}
		return err
	}
	s.Log.WithFields(logrus.Fields{"order_id": n.OrderID, "user_id": userID, "status": n.Status}).Info("customer notified")
	return nil
}
