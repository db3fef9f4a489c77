package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/internal/config"
)

// NewDB opens the connection pool, retrying while the database comes up.
func NewDB(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	attempts := cfg.ConnectRetries
	if attempts < 1 {
		attempts = 1
	}

	var (
		db  *sqlx.DB
		err error
	)
	for i := 1; i <= attempts; i++ {
		db, err = sqlx.ConnectContext(ctx, "postgres", cfg.URL)
		if err == nil {
			break
		}

		log.Warn().Err(err).Int("attempt", i).Int("max_attempts", attempts).Msg("database not ready")
		if i == attempts {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to database: %w", ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}
