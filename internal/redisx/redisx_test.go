package redisx

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := New(mr.Addr())
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func TestMarkOnce(t *testing.T) {
	ctx := context.Background()
	rdb, mr := newClient(t)

	first, err := MarkOnce(ctx, rdb, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := MarkOnce(ctx, rdb, "k", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	first, err = MarkOnce(ctx, rdb, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestFeedNewestFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	rdb, mr := newClient(t)
	f := &Feed{RDB: rdb}

	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < MaxNotifications+5; i++ {
		require.NoError(t, f.Push(ctx, "USR_1", Notification{
			OrderID:   fmt.Sprintf("ORD_%d", i),
			Status:    "PENDING",
			Message:   "Recibimos tu pedido",
			CreatedAt: at.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := f.List(ctx, "USR_1")
	require.NoError(t, err)
	require.Len(t, got, MaxNotifications)
	assert.Equal(t, fmt.Sprintf("ORD_%d", MaxNotifications+4), got[0].OrderID)
	assert.Equal(t, "ORD_5", got[len(got)-1].OrderID)
	assert.True(t, got[0].CreatedAt.Equal(at.Add(time.Duration(MaxNotifications+4)*time.Minute)))
	assert.Equal(t, TTLNotifications, mr.TTL("notifications:USR_1"))

	empty, err := f.List(ctx, "USR_2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFeedSkipsUndecodableEntries(t *testing.T) {
	ctx := context.Background()
	rdb, mr := newClient(t)
	f := &Feed{RDB: rdb}

	require.NoError(t, f.Push(ctx, "USR_1", Notification{OrderID: "ORD_1"}))
	_, err := mr.Lpush("notifications:USR_1", "garbage")
	require.NoError(t, err)

	got, err := f.List(ctx, "USR_1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ORD_1", got[0].OrderID)
}

func TestDedupFirstAndForget(t *testing.T) {
	ctx := context.Background()
	rdb, mr := newClient(t)
	d := &Dedup{RDB: rdb, Service: "notifier"}

	first, err := d.First(ctx, "ev-1")
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, TTLDedup, mr.TTL("dedup:notifier:ev-1"))

	first, err = d.First(ctx, "ev-1")
	require.NoError(t, err)
	assert.False(t, first)

	// another service keeps its own record
	other := &Dedup{RDB: rdb, Service: "audit"}
	first, err = other.First(ctx, "ev-1")
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, d.Forget(ctx, "ev-1"))
	first, err = d.First(ctx, "ev-1")
	require.NoError(t, err)
	assert.True(t, first)
}
