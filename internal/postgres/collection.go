package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Collection keeps entities as JSONB documents keyed by id. Put touches a
// single row; Update locks the table for the length of its transaction.
type Collection[T any] struct {
	db    *pgxpool.Pool
	table string
	key   func(T) string
}

func NewCollection[T any](db *pgxpool.Pool, table string, key func(T) string) *Collection[T] {
	return &Collection[T]{db: db, table: table, key: key}
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	items, _, err := c.load(ctx, c.db)
	return items, err
}

// load returns the documents in insertion order plus their raw encoding by id.
func (c *Collection[T]) load(ctx context.Context, q querier) ([]T, map[string][]byte, error) {
	rows, err := q.Query(ctx, `SELECT id, doc FROM `+c.table+` ORDER BY seq`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	out := []T{}
	raw := map[string][]byte{}
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, nil, err
		}
		var v T
		if err := json.Unmarshal(doc, &v); err != nil {
			return nil, nil, fmt.Errorf("decode %s %s: %w", c.table, id, err)
		}
		out = append(out, v)
		raw[id] = doc
	}
	return out, raw, rows.Err()
}

func (c *Collection[T]) Put(ctx context.Context, item T) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return err
	}
	// Put means "remove then append": a replaced row moves to the end.
	_, err = c.db.Exec(ctx, `
		INSERT INTO `+c.table+`(id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, seq = nextval(pg_get_serial_sequence('`+c.table+`', 'seq')), updated_at = now()`,
		c.key(item), doc)
	return err
}

func (c *Collection[T]) ReplaceAll(ctx context.Context, items []T) error {
	return c.Update(ctx, func([]T) ([]T, error) { return items, nil })
}

func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	tx, err := c.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `LOCK TABLE `+c.table+` IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return err
	}
	items, before, err := c.load(ctx, tx)
	if err != nil {
		return err
	}
	out, err := fn(items)
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(out))
	for _, it := range out {
		id := c.key(it)
		keep[id] = true
		doc, err := json.Marshal(it)
		if err != nil {
			return err
		}
		if prev, ok := before[id]; ok && jsonEqual(prev, doc) {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO `+c.table+`(id, doc) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`, id, doc); err != nil {
			return err
		}
	}
	for id := range before {
		if keep[id] {
			continue
		}
		if _, err := tx.Exec(ctx, `DELETE FROM `+c.table+` WHERE id = $1`, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// jsonEqual compares two documents ignoring key order and whitespace, since
// JSONB normalizes what it stores.
func jsonEqual(a, b []byte) bool {
	if bytes.Equal(a, b) {
		return true
	}
	var x, y any
	if json.Unmarshal(a, &x) != nil || json.Unmarshal(b, &y) != nil {
		return false
	}
	xa, _ := json.Marshal(x)
	ya, _ := json.Marshal(y)
	return bytes.Equal(xa, ya)
}
