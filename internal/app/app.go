// Package app wires configuration, storage and handlers into a runnable HTTP server.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/kabz8/Nextcare/internal/config"
	"github.com/kabz8/Nextcare/internal/handler"
	bookingHandler "github.com/kabz8/Nextcare/internal/handler/booking"
	catalogHandler "github.com/kabz8/Nextcare/internal/handler/catalog"
	"github.com/kabz8/Nextcare/internal/handler/health"
	productHandler "github.com/kabz8/Nextcare/internal/handler/product"
	userHandler "github.com/kabz8/Nextcare/internal/handler/user"
	"github.com/kabz8/Nextcare/internal/middleware"
	"github.com/kabz8/Nextcare/internal/repository"
	"github.com/kabz8/Nextcare/internal/repository/memory"
	"github.com/kabz8/Nextcare/internal/repository/postgres"
	"github.com/kabz8/Nextcare/internal/router"
	"github.com/kabz8/Nextcare/internal/seed"
	"github.com/kabz8/Nextcare/internal/service/booking"
	"github.com/kabz8/Nextcare/internal/service/catalog"
	"github.com/kabz8/Nextcare/internal/service/notification"
	"github.com/kabz8/Nextcare/internal/service/product"
	"github.com/kabz8/Nextcare/internal/service/user"
	"github.com/kabz8/Nextcare/pkg/messaging"
	"github.com/kabz8/Nextcare/pkg/messaging/redis"
	"github.com/kabz8/Nextcare/pkg/metrics"
)

type Deps struct {
	Store    *repository.Store
	Broker   messaging.Broker
	Registry *prometheus.Registry
}

type App struct {
	Config  *config.Config
	Deps    Deps
	Router  *router.Router
	closers []func() error
}

// New opens the configured store and broker and builds the router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	var closers []func() error
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	closers = append(closers, closeStore)

	broker, err := OpenBroker(ctx, cfg.Redis)
	if err != nil {
		closeAll()
		return nil, err
	}
	closers = append(closers, broker.Close)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, err := NewWithDeps(cfg, Deps{Store: store, Broker: broker, Registry: registry})
	if err != nil {
		closeAll()
		return nil, err
	}
	a.closers = closers
	return a, nil
}

// OpenStore returns the repository set for cfg.Database.Driver. The memory store is
// seeded on open since it starts empty.
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, func() error, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		if _, err := seed.Run(ctx, store, seed.Options{
			HorizonDays: cfg.Seed.HorizonDays,
			ExtraDates:  cfg.Seed.ExtraDates,
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		return store, func() error { return nil }, nil

	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// OpenBroker connects to Redis when a URL is configured and otherwise logs events.
func OpenBroker(ctx context.Context, cfg config.RedisConfig) (messaging.Broker, error) {
	if cfg.URL == "" {
		log.Info().Msg("redis.url not set, booking events are logged only")
		return messaging.NewLogBroker(), nil
	}

	broker, err := redis.NewRedisBroker(ctx, redis.Config{
		URL:      cfg.URL,
		PoolSize: cfg.PoolSize,
	})
	if err != nil {
		return nil, err
	}
	return broker, nil
}

// NewWithDeps builds services, handlers and the router around existing dependencies.
func NewWithDeps(cfg *config.Config, deps Deps) (*App, error) {
	m := metrics.NewMetrics(deps.Registry, cfg.Metrics.Namespace)

	var notifier booking.Notifier
	if cfg.Notification.Enabled {
		mailer := notification.NewMailer(cfg.Notification.From, cfg.Notification.ClinicName, nil)
		notifier = notification.NewService(deps.Broker, mailer, notification.Config{
			Channel: cfg.Redis.Channel,
			Async:   cfg.Notification.Async,
		}, m)
	}

	store := deps.Store
	bookingSvc := booking.NewService(store.TimeSlots, store.Appointments, store.Services, notifier, m)
	catalogSvc := catalog.NewService(store.Services, store.Testimonials, cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	productSvc := product.NewService(store.Products)
	userSvc := user.NewService(store.Users, nil)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	r, err := router.NewRouter(
		router.RouterConfig{
			Mode:             cfg.Server.Mode,
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RPS),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       corsConfig,
			MetricsNamespace: cfg.Metrics.Namespace,
			RequestTimeout:   cfg.Server.RequestTimeout,
			MaxBodyBytes:     cfg.Server.MaxBodyBytes,
			CacheMaxAge:      cfg.Cache.HTTPMaxAge,
		},
		deps.Registry,
		health.NewHandler(store.Pinger, deps.Registry),
		handler.Handlers{
			catalogHandler.NewHandler(catalogSvc),
		},
		handler.Handlers{
			bookingHandler.NewHandler(bookingSvc),
			productHandler.NewHandler(productSvc),
			userHandler.NewHandler(userSvc),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build router: %w", err)
	}

	return &App{
		Config: cfg,
		Deps:   deps,
		Router: r,
	}, nil
}

func (a *App) Server() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router.Engine(),
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}
}

// Close releases the broker and database opened by New.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
