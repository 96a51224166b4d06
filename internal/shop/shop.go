// Package shop holds the storefront domain: users, products, carts, orders
// and the services that validate and persist changes to them.
package shop

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Services bundles the domain services over one store.
type Services struct {
	Auth     *Auth
	Products *Products
	Orders   *Orders
	Users    *Users
}

func NewServices(store *Store, hasher PasswordHasher, notifier Notifier, log logrus.FieldLogger) *Services {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if store.Log == nil {
		store.Log = log
	}
	return &Services{
		Auth:     &Auth{Store: store, Hasher: hasher, Log: log.WithField("component", "auth")},
		Products: &Products{Store: store, Log: log.WithField("component", "products")},
		Orders:   &Orders{Store: store, Notifier: notifier, Log: log.WithField("component", "orders"), Now: time.Now},
		Users:    &Users{Store: store, Log: log.WithField("component", "users")},
	}
}
