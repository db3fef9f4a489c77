package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/config"
	"github.com/kabz8/Nextcare/internal/service/notification"
	internalworker "github.com/kabz8/Nextcare/internal/worker"
	"github.com/kabz8/Nextcare/pkg/logger"
	"github.com/kabz8/Nextcare/pkg/messaging/redis"
	"github.com/kabz8/Nextcare/pkg/metrics"
	"github.com/kabz8/Nextcare/pkg/worker"
)

func setupHealthCheck(port int, reg *prometheus.Registry) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health check server failed")
		}
	}()
	return srv
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	if cfg.Redis.URL == "" {
		log.Fatal().Msg("redis.url must be set for the worker")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker, err := redis.NewRedisBroker(ctx, redis.Config{
		URL:      cfg.Redis.URL,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg, cfg.Metrics.Namespace)

	mailer := notification.NewMailer(cfg.Notification.From, cfg.Notification.ClinicName, nil)
	consumer, err := worker.NewConsumer(broker, internalworker.NewConfirmationMailer(mailer, m), worker.ConsumerConfig{
		Channel:       cfg.Redis.Channel,
		RetryAttempts: cfg.Worker.RetryAttempts,
		RetryDelay:    cfg.Worker.RetryDelay,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create consumer")
	}

	health := setupHealthCheck(cfg.Worker.HealthPort, reg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("shutting down...")
		cancel()
	}()

	if err := consumer.Start(ctx); err != nil {
		log.Error().Err(err).Msg("consumer stopped")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	_ = health.Shutdown(shutdownCtx)
}
