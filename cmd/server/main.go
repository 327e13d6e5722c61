// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	donationHandler "foodbridge/internal/donation/handler"
	"foodbridge/internal/donation/location"
	donationService "foodbridge/internal/donation/service"
	donationStore "foodbridge/internal/donation/store"
	identityHandler "foodbridge/internal/identity/handler"
	identityService "foodbridge/internal/identity/service"
	identityStore "foodbridge/internal/identity/store"
	"foodbridge/internal/identity/token"
	"foodbridge/internal/platform/config"
	"foodbridge/internal/platform/events"
	"foodbridge/internal/platform/httpserver"
	"foodbridge/internal/platform/logger"
	"foodbridge/internal/platform/metrics"
	"foodbridge/internal/platform/middleware"
	platformRedis "foodbridge/internal/platform/redis"
	"foodbridge/pkg/geo"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots, cleanup, err := newSnapshotStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("snapshot store: %w", err)
	}
	defer cleanup()

	publisher, closeEvents, err := newEventPublisher(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("event publisher: %w", err)
	}
	defer closeEvents()

	engine, err := donationService.New(snapshots,
		donationService.WithLogger(log),
		donationService.WithMetrics(m),
		donationService.WithEvents(publisher),
	)
	if err != nil {
		return fmt.Errorf("donation engine: %w", err)
	}
	if err := engine.Restore(ctx); err != nil {
		return fmt.Errorf("restore donations: %w", err)
	}

	tokens := token.NewManager(cfg.JWTSigningKey, cfg.JWTTTL)
	identity, err := identityService.New(identityStore.NewInMemoryUserStore(), tokens,
		identityService.WithLogger(log),
		identityService.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("identity service: %w", err)
	}
	if cfg.SeedDemoUsers {
		if err := identity.SeedDemoUsers(ctx); err != nil {
			return fmt.Errorf("seed demo users: %w", err)
		}
	}

	locations, closeLocations, err := newLocationProvider(cfg, log)
	if err != nil {
		return fmt.Errorf("location provider: %w", err)
	}
	defer closeLocations()

	// RequestID runs first so the recovery and access logs carry it; Recovery
	// sits innermost so the logger still records the 500 it writes.
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.ClientIP)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	identityHandler.New(identity, tokens, log).Register(router)
	donationHandler.New(engine, locations, tokens, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return publisher.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting foodbridge", "addr", cfg.Addr, "backend", string(cfg.SnapshotBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newSnapshotStore picks the persistence backend for the donation collection.
func newSnapshotStore(ctx context.Context, cfg config.Server) (donationStore.SnapshotStore, func(), error) {
	noop := func() {}
	switch cfg.SnapshotBackend {
	case config.BackendMemory:
		return donationStore.NewInMemoryStore(), noop, nil

	case config.BackendRedis:
		client, err := platformRedis.New(cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		if client == nil {
			return nil, noop, fmt.Errorf("redis backend selected but REDIS_URL is empty")
		}
		return donationStore.NewRedis(client.Client), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		if cfg.PostgresURL == "" {
			return nil, noop, fmt.Errorf("postgres backend selected but POSTGRES_URL is empty")
		}
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return nil, noop, err
		}
		store, err := donationStore.NewPostgres(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return store, func() { _ = db.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}

// newEventPublisher wires the donation event trail. Without brokers the
// events stay on an in-process sink, which is enough for development.
func newEventPublisher(ctx context.Context, cfg config.Server, log *slog.Logger) (*events.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.NewPublisher(log, events.NewMemorySink()), func() {}, nil
	}

	sink, err := events.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, func() {}, err
	}
	return events.NewPublisher(log, sink), func() { sink.Close() }, nil
}

func newLocationProvider(cfg config.Server, log *slog.Logger) (donationHandler.LocationProvider, func(), error) {
	noop := func() {}
	if cfg.GeoIPDBPath != "" {
		provider, err := location.NewGeoIPProvider(cfg.GeoIPDBPath)
		if err != nil {
			return nil, noop, err
		}
		log.Info("geoip location provider enabled", "db", cfg.GeoIPDBPath)
		return provider, func() { _ = provider.Close() }, nil
	}

	log.Info("static location provider enabled",
		"lat", cfg.DefaultLat,
		"lon", cfg.DefaultLon,
	)
	return location.NewStaticProvider(geo.Coordinates{Lat: cfg.DefaultLat, Lon: cfg.DefaultLon}), noop, nil
}
