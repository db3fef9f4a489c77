package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/config"
	"github.com/kabz8/Nextcare/internal/migration"
	"github.com/kabz8/Nextcare/internal/repository/postgres"
	"github.com/kabz8/Nextcare/internal/seed"
	"github.com/kabz8/Nextcare/pkg/logger"
)

const argLength = 2

type migrateConfig struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	MigrationsPath  string        `envconfig:"MIGRATIONS_PATH" default:"file://migrations/postgres"`
	SeedHorizonDays int           `envconfig:"SEED_HORIZON_DAYS" default:"30"`
	SeedExtraDates  []string      `envconfig:"SEED_EXTRA_DATES" default:"2025-04-01,2025-04-02,2025-04-03"`
	ConnectRetries  int           `envconfig:"DATABASE_CONNECT_RETRIES" default:"5"`
	RetryInterval   time.Duration `envconfig:"DATABASE_RETRY_INTERVAL" default:"2s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
}

func main() {
	if len(os.Args) < argLength {
		log.Fatal().Msg("action is required: up, down, drop, step-up or seed")
	}

	_ = godotenv.Load()

	var cfg migrateConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Config{Level: cfg.LogLevel})

	action := os.Args[1]
	if action == "seed" {
		if err := runSeed(cfg); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		return
	}

	mig, err := migration.New(cfg.MigrationsPath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open migrations")
	}
	if err := migration.Run(mig, action); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("migration failed")
	}
}

func runSeed(cfg migrateConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := postgres.NewDB(ctx, config.DatabaseConfig{
		Driver:         config.DriverPostgres,
		URL:            cfg.DatabaseURL,
		MaxOpenConns:   2,
		MaxIdleConns:   1,
		ConnectRetries: cfg.ConnectRetries,
		RetryInterval:  cfg.RetryInterval,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = seed.Run(ctx, postgres.NewStore(db), seed.Options{
		HorizonDays: cfg.SeedHorizonDays,
		ExtraDates:  cfg.SeedExtraDates,
	})
	return err
}
