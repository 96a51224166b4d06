// Package app builds the pieces shared by the binaries from a Config.
package app

import (
	"context"
	"fmt"

	"github.com/ariefcatur/unicor-shoes/internal/config"
	"github.com/ariefcatur/unicor-shoes/internal/jsondb"
	kafkax "github.com/ariefcatur/unicor-shoes/internal/kafka"
	"github.com/ariefcatur/unicor-shoes/internal/metrics"
	"github.com/ariefcatur/unicor-shoes/internal/password"
	"github.com/ariefcatur/unicor-shoes/internal/postgres"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/sirupsen/logrus"
)

// OpenStore opens the collection driver named by cfg.StoreDriver. The
// returned func releases it.
func OpenStore(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*shop.Store, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("using postgres store")
		return postgres.NewStore(pool, log), pool.Close, nil
	case "json", "":
		store, err := jsondb.NewStore(cfg.DataDir, log)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("dir", cfg.DataDir).Info("using flat-file store")
		return store, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

func NewHasher(cfg config.Config) *password.Hasher {
	return password.New(password.Params{
		MemoryKiB: cfg.Argon2MemoryKiB,
		Time:      cfg.Argon2Time,
		Threads:   cfg.Argon2Threads,
	})
}

// OrderNotifiers always counts order metrics and, when KAFKA_BROKERS is set,
// publishes order events. The returned func flushes and stops the producer.
func OrderNotifiers(cfg config.Config, log logrus.FieldLogger) (shop.Notifiers, func()) {
	notifiers := shop.Notifiers{metrics.Orders{}}
	if len(cfg.KafkaBrokers) == 0 {
		return notifiers, func() {}
	}
	prod := kafkax.NewProducer(cfg.KafkaBrokers, shop.TopicOrders, 1024, log)
	prod.Start()
	notifiers = append(notifiers, &kafkax.OrderEvents{Producer: prod, Service: cfg.ServiceName, Log: log})
	return notifiers, func() {
		prod.Close()      // stop accepting, flush the inbox
		prod.WaitClosed() // drain
	}
}
