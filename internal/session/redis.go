package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/unicor-shoes/internal/redisx"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/redis/go-redis/v9"
)

// Redis stores sessions as JSON under session:{token} with a sliding TTL.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Create(ctx context.Context) (string, *shop.Session, error) {
	s := shop.NewSession()
	token := newToken()
	if err := r.Save(ctx, token, s); err != nil {
		return "", nil, err
	}
	return token, s, nil
}

func (r *Redis) Get(ctx context.Context, token string) (*shop.Session, error) {
	b, err := r.rdb.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s := shop.NewSession()
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (r *Redis) Save(ctx context.Context, token string, s *shop.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key(token), b, r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, token string) error {
	return r.rdb.Del(ctx, key(token)).Err()
}

func key(token string) string { return fmt.Sprintf(redisx.KeySession, token) }
