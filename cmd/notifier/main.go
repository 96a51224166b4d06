package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/unicor-shoes/internal/config"
	kafkax "github.com/ariefcatur/unicor-shoes/internal/kafka"
	"github.com/ariefcatur/unicor-shoes/internal/logging"
	"github.com/ariefcatur/unicor-shoes/internal/notify"
	"github.com/ariefcatur/unicor-shoes/internal/redisx"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	name := cfg.ServiceName + "-notifier"
	log := logging.New(cfg.LogLevel, cfg.LogFormat, name)
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Service
	svc := &notify.Service{
		Dedup: &redisx.Dedup{RDB: rdb, Service: name},
		Feed:  &redisx.Feed{RDB: rdb},
		Log:   log,
	}

	// Consumer
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.NotifyGroup, shop.TopicOrders, cfg.NotifyWorkers, log)
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.WithFields(logrus.Fields{
			"group":   cfg.NotifyGroup,
			"topic":   shop.TopicOrders,
			"workers": cfg.NotifyWorkers,
		}).Info("notifier consumer started")
		if err := cons.Start(ctx, svc.HandleOrderEvent); err != nil {
			log.WithError(err).Error("consumer exit")
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down consumer...")
	cancel()
	<-done
}
