package shop_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ariefcatur/unicor-shoes/internal/jsondb"
	"github.com/ariefcatur/unicor-shoes/internal/password"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	placed  []shop.Order
	changes []string // "<order id> FROM->TO"
}

func (r *recorder) OrderPlaced(_ context.Context, o shop.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placed = append(r.placed, o)
}

func (r *recorder) OrderStatusChanged(_ context.Context, o shop.Order, from shop.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, o.ID+" "+string(from)+"->"+string(o.Status))
}

type fixture struct {
	ctx    context.Context
	store  *shop.Store
	svc    *shop.Services
	hasher *password.Hasher
	events *recorder
	clock  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := jsondb.NewStore(t.TempDir(), log)
	require.NoError(t, err)

	f := &fixture{
		ctx:    context.Background(),
		store:  store,
		hasher: password.New(password.Params{MemoryKiB: 1024, Time: 1, Threads: 1}),
		events: &recorder{},
		clock:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	f.svc = shop.NewServices(store, f.hasher, f.events, log)
	f.svc.Orders.Now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	return f
}

func (f *fixture) product(t *testing.T, name string, price int64, stock int) shop.Product {
	t.Helper()
	p, err := f.svc.Products.Add(f.ctx, shop.Product{
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		Category: "Zapatillas",
		Brand:    "Nike",
	})
	require.NoError(t, err)
	return p
}

// shopper registers username and returns a session logged in as that user.
func (f *fixture) shopper(t *testing.T, username string) *shop.Session {
	t.Helper()
	_, err := f.svc.Auth.Register(f.ctx, username, "secret1", username+"@x.com", "Test "+username)
	require.NoError(t, err)
	sess := shop.NewSession()
	require.NoError(t, f.svc.Auth.Login(f.ctx, sess, username, "secret1"))
	return sess
}

func (f *fixture) stock(t *testing.T, id string) shop.Product {
	t.Helper()
	p, err := f.svc.Products.ByID(f.ctx, id)
	require.NoError(t, err)
	return p
}

func (f *fixture) storedUser(t *testing.T, id string) shop.User {
	t.Helper()
	u, err := f.svc.Users.ByID(f.ctx, id)
	require.NoError(t, err)
	return u
}
