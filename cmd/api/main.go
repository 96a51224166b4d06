package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/unicor-shoes/internal/app"
	"github.com/ariefcatur/unicor-shoes/internal/config"
	"github.com/ariefcatur/unicor-shoes/internal/httpx"
	"github.com/ariefcatur/unicor-shoes/internal/logging"
	"github.com/ariefcatur/unicor-shoes/internal/redisx"
	"github.com/ariefcatur/unicor-shoes/internal/seed"
	"github.com/ariefcatur/unicor-shoes/internal/session"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	defer closeStore()

	hasher := app.NewHasher(cfg)
	if cfg.SeedOnStart {
		catalog, err := seed.DefaultCatalog()
		if err != nil {
			log.WithError(err).Fatal("load catalog")
		}
		if _, err := seed.Run(ctx, store, hasher, catalog, log); err != nil {
			log.WithError(err).Fatal("seed")
		}
	}

	// Redis backs sessions and the notification feed when enabled.
	var rdb *redis.Client
	if cfg.SessionDriver == "redis" || len(cfg.KafkaBrokers) > 0 {
		rdb = redisx.New(cfg.RedisAddr)
		defer rdb.Close()
	}

	// Kafka producer (optional)
	notifiers, stopEvents := app.OrderNotifiers(cfg, log)

	svc := shop.NewServices(store, hasher, notifiers, log)
	limiter := httpx.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst, log)
	h := &httpx.Handler{Services: svc, Login: limiter, Log: log}

	var mem *session.Memory
	switch cfg.SessionDriver {
	case "redis":
		h.Sessions = session.NewRedis(rdb, cfg.SessionTTL)
	default:
		mem = session.NewMemory(cfg.SessionTTL)
		h.Sessions = mem
	}
	if rdb != nil {
		h.Feed = &redisx.Feed{RDB: rdb}
	}

	go housekeeping(ctx, mem, limiter)

	router := httpx.NewRouter(log)
	h.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen")
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	cancel()
	stopEvents()
}

// housekeeping drops expired in-memory sessions and idle rate-limit buckets.
func housekeeping(ctx context.Context, mem *session.Memory, limiter *httpx.RateLimiter) {
	t := time.NewTicker(5 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if mem != nil {
				mem.Sweep()
			}
			limiter.Cleanup(15 * time.Minute)
		}
	}
}
