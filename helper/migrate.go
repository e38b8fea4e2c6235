package helper

import (
	"dinebook/config"
	"dinebook/infras/postgres"
	"dinebook/migrations"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

func newMigrate(config *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	dsn := postgres.DSN(config, config.DB.Postgres.Write, url.Values{
		"x-migrations-table": {config.DB.Postgres.MigrationTable},
	})

	mig, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func apply(mig *migrate.Migrate, action string) error {
	switch action {
	case ActionUp:
		return mig.Up()
	case ActionDown:
		return mig.Steps(-1)
	case ActionStepUp:
		return mig.Steps(1)
	case ActionDrop:
		return mig.Down()
	case ActionVersion:
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// Runner applies one migration action against the write database and logs the resulting schema version.
func Runner(config *config.Config, action string) error {
	mig, err := newMigrate(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err = apply(mig, action); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading schema version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
