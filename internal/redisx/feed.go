package redisx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Notification is one customer-facing message about an order.
type Notification struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Feed is the per-user notification list.
type Feed struct {
	RDB *redis.Client
}

func (f *Feed) Push(ctx context.Context, userID string, n Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(KeyNotifications, userID)
	pipe := f.RDB.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, MaxNotifications-1)
	pipe.Expire(ctx, key, TTLNotifications)
	_, err = pipe.Exec(ctx)
	return err
}

func (f *Feed) List(ctx context.Context, userID string) ([]Notification, error) {
	vals, err := f.RDB.LRange(ctx, fmt.Sprintf(KeyNotifications, userID), 0, MaxNotifications-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(vals))
	for _, v := range vals {
		var n Notification
		if err := json.Unmarshal([]byte(v), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Dedup remembers processed event ids per service.
type Dedup struct {
	RDB     *redis.Client
	Service string
}

// First reports whether eventID is seen for the first time.
func (d *Dedup) First(ctx context.Context, eventID string) (bool, error) {
	return MarkOnce(ctx, d.RDB, fmt.Sprintf(KeyDedup, d.Service, eventID), TTLDedup)
}

func (d *Dedup) Forget(ctx context.Context, eventID string) error {
	return d.RDB.Del(ctx, fmt.Sprintf(KeyDedup, d.Service, eventID)).Err()
}
