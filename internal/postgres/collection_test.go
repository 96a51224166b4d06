package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEqual(t *testing.T) {
	assert.True(t, jsonEqual([]byte(`{"a":1,"b":"x"}`), []byte(`{"b": "x", "a": 1}`)))
	assert.False(t, jsonEqual([]byte(`{"a":1}`), []byte(`{"a":2}`)))
	assert.False(t, jsonEqual([]byte(`{"a":1}`), []byte(`not json`)))
}

// Runs against a real database when POSTGRES_TEST_DSN is set.
func TestCollectionAgainstPostgres(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := Connect(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE products`)
	require.NoError(t, err)

	c := NewCollection(pool, TableProducts, shop.ProductKey)
	a := shop.Product{ID: "PROD_a", Name: "A", Price: decimal.NewFromInt(10), Stock: 1, Active: true}
	b := shop.Product{ID: "PROD_b", Name: "B", Price: decimal.NewFromInt(20), Stock: 2, Active: true}
	require.NoError(t, c.Put(ctx, a))
	require.NoError(t, c.Put(ctx, b))

	a.Stock = 5
	require.NoError(t, c.Put(ctx, a))
	all, err := c.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "PROD_b", all[0].ID)
	assert.Equal(t, 5, all[1].Stock)

	err = c.Update(ctx, func(items []shop.Product) ([]shop.Product, error) {
		return items[1:], nil
	})
	require.NoError(t, err)
	all, err = c.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "PROD_a", all[0].ID)
}
