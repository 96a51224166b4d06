package shop

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	PrefixUser    = "USR"
	PrefixProduct = "PROD"
	PrefixOrder   = "ORD"
)

// Collection is a whole-collection persistence unit for one entity type.
// Implementations must serialize Update calls against each other and against Put.
type Collection[T any] interface {
	// All returns every stored entity in storage order.
	All(ctx context.Context) ([]T, error)
	// ReplaceAll overwrites the collection with items.
	ReplaceAll(ctx context.Context, items []T) error
	// Put replaces the entity with the same id, or appends it.
	Put(ctx context.Context, item T) error
	// Update runs fn over the current contents and stores what it returns.
	// If fn fails nothing is written.
	Update(ctx context.Context, fn func(items []T) ([]T, error)) error
}

type Store struct {
	Users    Collection[User]
	Products Collection[Product]
	Orders   Collection[Order]
	Log      logrus.FieldLogger
}

func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func (s *Store) LoadUsers(ctx context.Context) []User {
	return loadOrEmpty(ctx, s.Users, s.Log, "users")
}

func (s *Store) LoadProducts(ctx context.Context) []Product {
	return loadOrEmpty(ctx, s.Products, s.Log, "products")
}

func (s *Store) LoadOrders(ctx context.Context) []Order {
	return loadOrEmpty(ctx, s.Orders, s.Log, "orders")
}

func (s *Store) SaveUsers(ctx context.Context, users []User) error {
	return wrap("save users", s.Users.ReplaceAll(ctx, users))
}

func (s *Store) SaveProducts(ctx context.Context, products []Product) error {
	return wrap("save products", s.Products.ReplaceAll(ctx, products))
}

func (s *Store) SaveOrders(ctx context.Context, orders []Order) error {
	return wrap("save orders", s.Orders.ReplaceAll(ctx, orders))
}

func (s *Store) SaveUser(ctx context.Context, u User) error {
	return wrap("save user "+u.ID, s.Users.Put(ctx, u))
}

func (s *Store) SaveProduct(ctx context.Context, p Product) error {
	return wrap("save product "+p.ID, s.Products.Put(ctx, p))
}

func (s *Store) SaveOrder(ctx context.Context, o Order) error {
	return wrap("save order "+o.ID, s.Orders.Put(ctx, o))
}

func loadOrEmpty[T any](ctx context.Context, c Collection[T], log logrus.FieldLogger, name string) []T {
	items, err := c.All(ctx)
	if err != nil {
		if log != nil {
			log.WithError(err).WithField("collection", name).Error("load failed, using empty collection")
		}
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ReplaceByKey removes the entity with the same key as item and appends item.
// It is the Put semantics shared by the collection drivers.
func ReplaceByKey[T any](items []T, item T, key func(T) string) []T {
	id := key(item)
	out := make([]T, 0, len(items)+1)
	for _, it := range items {
		if key(it) != id {
			out = append(out, it)
		}
	}
	return append(out, item)
}
