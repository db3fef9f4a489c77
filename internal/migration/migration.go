package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

const DefaultSource = "file://migrations/postgres"

// Migrator is the part of *migrate.Migrate that Run drives.
type Migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Close() (source error, database error)
}

// New opens a migrator for databaseURL reading migrations from source.
func New(source, databaseURL string) (Migrator, error) {
	if source == "" {
		source = DefaultSource
	}
	mig, err := migrate.New(source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}
	return mig, nil
}

// Run applies action and closes the migrator. ErrNoChange counts as success.
func Run(mig Migrator, action string) error {
	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrator")
		}
	}()

	var err error
	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("invalid action %q, use up, down, drop or step-up", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Bool("changed", err == nil).Msg("database migration finished")
	return nil
}
