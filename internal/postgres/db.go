package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	TableUsers    = "users"
	TableProducts = "products"
	TableOrders   = "orders"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Migrate creates one id-keyed document table per collection.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range []string{TableUsers, TableProducts, TableOrders} {
		_, err := pool.Exec(ctx, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY,
				doc        JSONB NOT NULL,
				seq        BIGSERIAL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, table))
		if err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	return nil
}

func NewStore(pool *pgxpool.Pool, log logrus.FieldLogger) *shop.Store {
	return &shop.Store{
		Users:    NewCollection(pool, TableUsers, shop.UserKey),
		Products: NewCollection(pool, TableProducts, shop.ProductKey),
		Orders:   NewCollection(pool, TableOrders, shop.OrderKey),
		Log:      log,
	}
}
