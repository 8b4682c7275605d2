package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/trustabee/honey-marketplace/internal/config"
	identityapp "github.com/trustabee/honey-marketplace/internal/identity/application"
	identitydomain "github.com/trustabee/honey-marketplace/internal/identity/domain"
	identityhttp "github.com/trustabee/honey-marketplace/internal/identity/infrastructure/http"
	identitymem "github.com/trustabee/honey-marketplace/internal/identity/infrastructure/memory"
	identitymongo "github.com/trustabee/honey-marketplace/internal/identity/infrastructure/mongo"
	identityredis "github.com/trustabee/honey-marketplace/internal/identity/infrastructure/redis"
	"github.com/trustabee/honey-marketplace/internal/identity/infrastructure/token"
	notifyapp "github.com/trustabee/honey-marketplace/internal/notification/application"
	notifyhttp "github.com/trustabee/honey-marketplace/internal/notification/infrastructure/http"
	notifymem "github.com/trustabee/honey-marketplace/internal/notification/infrastructure/memory"
	notifyredis "github.com/trustabee/honey-marketplace/internal/notification/infrastructure/redis"
	shopapp "github.com/trustabee/honey-marketplace/internal/shop/application"
	shopdomain "github.com/trustabee/honey-marketplace/internal/shop/domain"
	shophttp "github.com/trustabee/honey-marketplace/internal/shop/infrastructure/http"
	shopkafka "github.com/trustabee/honey-marketplace/internal/shop/infrastructure/kafka"
	shoppg "github.com/trustabee/honey-marketplace/internal/shop/infrastructure/postgres"
	shopredis "github.com/trustabee/honey-marketplace/internal/shop/infrastructure/redis"
	shops3 "github.com/trustabee/honey-marketplace/internal/shop/infrastructure/s3"
	"github.com/trustabee/honey-marketplace/migrations"
	"github.com/trustabee/honey-marketplace/pkg/auth"
	"github.com/trustabee/honey-marketplace/pkg/httpx"
	"github.com/trustabee/honey-marketplace/pkg/idempotency"
	"github.com/trustabee/honey-marketplace/pkg/idgen"
	"github.com/trustabee/honey-marketplace/pkg/logging"
	"github.com/trustabee/honey-marketplace/pkg/metrics"
	"github.com/trustabee/honey-marketplace/pkg/migrate"
	"github.com/trustabee/honey-marketplace/pkg/outbox"
	"github.com/trustabee/honey-marketplace/pkg/shutdown"
	"github.com/trustabee/honey-marketplace/pkg/tracing"
)

func main() {
	cfg, err := config.Load("shop-service", ".", "/etc/honey")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level).With("service", cfg.Service)
	if err := cfg.JWT.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	err = run(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("shop-service stopped", "err", err)
		os.Exit(1)
	}
	log.Info("shop-service shutdown complete")
}

type revocationStore interface {
	auth.RevocationChecker
	identityapp.Revoker
}

// shopSessions opens a shop session for every login.
type shopSessions struct{ svc *shopapp.Service }

func (s shopSessions) Open(u identitydomain.User) string {
	return s.svc.OpenSession(shopapp.Owner{UserID: u.ID, Role: string(u.Role)})
}

func (s shopSessions) Close(id string) { s.svc.CloseSession(id) }

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	tp, err := tracing.Init(ctx, cfg.Service, cfg.Tracing.Endpoint, log)
	if err != nil {
		return fmt.Errorf("otel init: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(flushCtx)
	}()

	m := metrics.New(prometheus.DefaultRegisterer)

	var (
		idem        idempotency.Checker = idempotency.NewMemoryStore(cfg.Redis.IdempotencyTTL)
		revocations revocationStore     = identitymem.NewRevocations()
		users       identityapp.UserStore
		inbox       notifyapp.Inbox = notifymem.NewInbox(cfg.Notifications.InboxSize)
		shopOpts                    = []shopapp.Option{shopapp.WithSessionTTL(cfg.Session.TTL)}
		pool        *pgxpool.Pool
		rdb         *redis.Client
	)

	if cfg.Postgres.Enabled() {
		if cfg.Postgres.AutoMigrate {
			if err := migrateUp(cfg.Postgres.URL, log); err != nil {
				return err
			}
		}
		pool, err = shoppg.Connect(ctx, cfg.Postgres.URL, cfg.Postgres.MaxConns, log)
		if err != nil {
			return err
		}
		defer pool.Close()
		shopOpts = append(shopOpts, shopapp.WithRepository(shoppg.NewRepository(log, pool)))
	}

	if cfg.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		idem = idempotency.NewStore(rdb, cfg.Redis.IdempotencyTTL)
		revocations = identityredis.NewRevocations(rdb)
		inbox = notifyredis.NewInbox(rdb, cfg.Notifications.InboxSize, cfg.Notifications.InboxTTL)
	}

	if cfg.Mongo.Enabled() {
		client, err := identitymongo.Connect(ctx, cfg.Mongo.URI, log)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		if users, err = identitymongo.NewUserStore(ctx, client.Database(cfg.Mongo.Database)); err != nil {
			return err
		}
	} else {
		users = identitymem.NewUserStore()
	}

	if cfg.S3.Enabled() {
		photos, err := shops3.NewPhotoStore(ctx, shops3.Config{
			Endpoint:     cfg.S3.Endpoint,
			Region:       cfg.S3.Region,
			Bucket:       cfg.S3.Bucket,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			UsePathStyle: cfg.S3.UsePathStyle,
			PresignTTL:   cfg.S3.PresignTTL,
		}, log)
		if err != nil {
			return err
		}
		if err := photos.EnsureBucket(ctx); err != nil {
			return err
		}
		shopOpts = append(shopOpts, shopapp.WithPhotoStore(photos))
	}

	shopSvc := shopapp.NewService(log, shopdomain.NewCatalog(shopdomain.SeedProducts()), idSource(pool, rdb), m, shopOpts...)
	issuer := token.NewIssuer(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.TTL)
	identitySvc := identityapp.NewService(log, users, issuer, shopSessions{shopSvc}, identityapp.WithRevoker(revocations))
	if err := identitySvc.SeedDemoUsers(ctx, cfg.DemoPassword); err != nil {
		return fmt.Errorf("seed demo users: %w", err)
	}
	notifySvc := notifyapp.NewService(log, inbox, m)

	validate := httpx.NewValidator()
	authn := auth.RequireAuth(issuer, revocations, log)
	idemMW := idempotency.Middleware(log, idem, func(r *http.Request) string {
		p, _ := auth.PrincipalFrom(r.Context())
		return p.UserID
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Get("/healthz", healthz(pool))
	r.Handle("/metrics", promhttp.Handler())
	identityhttp.NewHandler(log, identitySvc, validate).Mount(r, authn)
	shophttp.NewHandler(log, shopSvc, m, validate).Mount(r, authn, idemMW)
	notifyhttp.NewHandler(log, notifySvc).Mount(r, authn)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return shutdown.OnDone(gctx, cfg.HTTP.ShutdownTimeout, srv.Shutdown)
	})
	g.Go(func() error {
		return shopSvc.Sessions().Run(gctx, cfg.Session.JanitorInterval)
	})

	switch {
	case pool != nil && cfg.Kafka.Enabled():
		if err := shopkafka.EnsureTopic(ctx, cfg.Kafka.Brokers[0], cfg.Kafka.Topic, cfg.Kafka.Partitions); err != nil {
			log.Warn("ensure topic failed", "topic", cfg.Kafka.Topic, "err", err)
		}
		writer := shopkafka.NewWriter(cfg.Kafka.Brokers, log)
		defer writer.Close()

		relay := outbox.NewRelay(log, shoppg.NewOutboxStore(log, pool),
			outbox.NewDispatcher(log, writer, cfg.Kafka.Topic), relayID(cfg.Service),
			outbox.WithInterval(cfg.Kafka.RelayInterval),
			outbox.WithBatchSize(cfg.Kafka.RelayBatchSize),
			outbox.WithMaxRetries(cfg.Kafka.RelayMaxRetries),
		)
		g.Go(func() error { return relay.Run(gctx) })
	case cfg.Kafka.Enabled():
		log.Warn("kafka configured without postgres, outbox relay disabled")
	}

	return g.Wait()
}

// idSource picks the order and sample id generator. Postgres sequences win
// over Redis counters since ids are primary keys in the orders and samples
// tables and must survive a Redis flush.
func idSource(pool *pgxpool.Pool, rdb *redis.Client) idgen.Generator {
	switch {
	case pool != nil:
		return shoppg.NewSequence(pool)
	case rdb != nil:
		return shopredis.NewSequence(rdb)
	default:
		return idgen.NewSequence()
	}
}

func migrateUp(url string, log *slog.Logger) error {
	m, err := migrate.New(migrations.FS, url, log)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

func relayID(service string) string {
	host, err := os.Hostname()
	if err != nil {
		return service + "-relay"
	}
	return service + "-" + host
}

func healthz(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(ctx); err != nil {
				httpx.WriteError(w, http.StatusServiceUnavailable, "postgres unavailable")
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
