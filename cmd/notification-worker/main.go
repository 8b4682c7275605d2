package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/trustabee/honey-marketplace/internal/config"
	notifyapp "github.com/trustabee/honey-marketplace/internal/notification/application"
	notifykafka "github.com/trustabee/honey-marketplace/internal/notification/infrastructure/kafka"
	notifyredis "github.com/trustabee/honey-marketplace/internal/notification/infrastructure/redis"
	"github.com/trustabee/honey-marketplace/pkg/idempotency"
	"github.com/trustabee/honey-marketplace/pkg/logging"
	"github.com/trustabee/honey-marketplace/pkg/metrics"
	"github.com/trustabee/honey-marketplace/pkg/shutdown"
	"github.com/trustabee/honey-marketplace/pkg/tracing"
)

func main() {
	cfg, err := config.Load("notification-worker", ".", "/etc/honey")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level).With("service", cfg.Service)

	ctx, cancel := shutdown.WithSignals(context.Background())
	err = run(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("notification-worker stopped", "err", err)
		os.Exit(1)
	}
	log.Info("notification-worker shutdown complete")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if !cfg.Kafka.Enabled() || !cfg.Redis.Enabled() {
		return errors.New("notification-worker needs kafka.brokers and redis.addr")
	}

	tp, err := tracing.Init(ctx, cfg.Service, cfg.Tracing.Endpoint, log)
	if err != nil {
		return fmt.Errorf("otel init: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(flushCtx)
	}()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	svc := notifyapp.NewService(log, notifyredis.NewInbox(rdb, cfg.Notifications.InboxSize, cfg.Notifications.InboxTTL), m)
	reader := notifykafka.NewReader(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Group)
	consumer := notifykafka.NewConsumer(log, reader, svc, idempotency.NewStore(rdb, cfg.Redis.IdempotencyTTL))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: mux, ReadTimeout: cfg.HTTP.ReadTimeout}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("consuming", "topic", cfg.Kafka.Topic, "group", cfg.Kafka.Group)
		return consumer.Run(gctx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return shutdown.OnDone(gctx, cfg.HTTP.ShutdownTimeout, srv.Shutdown)
	})
	return g.Wait()
}
