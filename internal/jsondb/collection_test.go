package jsondb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func itemKey(i item) string { return i.ID }

func newItems(t *testing.T) *Collection[item] {
	t.Helper()
	return NewCollection(filepath.Join(t.TempDir(), "items.json"), itemKey)
}

func TestInitCreatesEmptyFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, Init(dir))

	for _, name := range []string{UsersFile, ProductsFile, OrdersFile} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(b))
	}

	// idempotent, and existing content survives
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(`[{"id":"USR_1"}]`), 0o644))
	require.NoError(t, Init(dir))
	b, err := os.ReadFile(filepath.Join(dir, UsersFile))
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"USR_1"}]`, string(b))
}

func TestWriteKeepsFileReadable(t *testing.T) {
	c := newItems(t)
	require.NoError(t, c.Put(context.Background(), item{ID: "a", Count: 1}))
	require.NoError(t, c.Put(context.Background(), item{ID: "b", Count: 2}))

	fi, err := os.Stat(c.Path())
	require.NoError(t, err)
	assert.Equal(t, fileMode, fi.Mode().Perm())
}

func TestAllOnMissingAndBlankFile(t *testing.T) {
	ctx := context.Background()
	c := newItems(t)

	items, err := c.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	require.NoError(t, os.WriteFile(c.Path(), []byte("  \n"), 0o644))
	items, err = c.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAllOnCorruptFile(t *testing.T) {
	ctx := context.Background()
	c := newItems(t)
	require.NoError(t, os.WriteFile(c.Path(), []byte("[{"), 0o644))

	_, err := c.All(ctx)
	assert.Error(t, err)

	// Update must not overwrite what it could not read.
	err = c.Update(ctx, func(items []item) ([]item, error) { return nil, nil })
	assert.Error(t, err)
	b, _ := os.ReadFile(c.Path())
	assert.Equal(t, "[{", string(b))
}

func TestPutReplacesById(t *testing.T) {
	ctx := context.Background()
	c := newItems(t)

	require.NoError(t, c.Put(ctx, item{ID: "a", Count: 1}))
	require.NoError(t, c.Put(ctx, item{ID: "b", Count: 1}))
	require.NoError(t, c.Put(ctx, item{ID: "a", Count: 2}))

	items, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "b", Count: 1}, {ID: "a", Count: 2}}, items)
}

func TestReplaceAllWritesPrettyArray(t *testing.T) {
	ctx := context.Background()
	c := newItems(t)

	require.NoError(t, c.ReplaceAll(ctx, []item{{ID: "x", Count: 3}}))
	b, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": \"x\",\n    \"count\": 3\n  }\n]", string(b))

	require.NoError(t, c.ReplaceAll(ctx, nil))
	b, err = os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestUpdateErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	c := newItems(t)
	require.NoError(t, c.Put(ctx, item{ID: "a", Count: 1}))

	boom := errors.New("boom")
	err := c.Update(ctx, func(items []item) ([]item, error) {
		items[0].Count = 99
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	items, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Count)
}

func TestConcurrentUpdatesLoseNothing(t *testing.T) {
	ctx := context.Background()
	c := newItems(t)
	require.NoError(t, c.Put(ctx, item{ID: "counter"}))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := c.Update(ctx, func(items []item) ([]item, error) {
				items[0].Count++
				return append(items, item{ID: "w" + strconv.Itoa(i)}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	items, err := c.All(ctx)
	require.NoError(t, err)
	assert.Len(t, items, n+1)
	assert.Equal(t, n, items[0].Count)
}

func TestUpdateHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newItems(t)
	err := c.Update(ctx, func(items []item) ([]item, error) { return items, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
