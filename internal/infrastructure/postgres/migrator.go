package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

func newMigrator(databaseURL, migrationsPath string) (*migrate.Migrate, error) {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open migrations at %s: %w", migrationsPath, err)
	}
	return m, nil
}

// RunMigrations applies all pending migrations. Applying an already
// current schema is not an error.
func RunMigrations(databaseURL, migrationsPath string) error {
	m, err := newMigrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}

	switch err := m.Up(); {
	case err == nil:
		log.Info().Msg("database migrations applied")
	case errors.Is(err, migrate.ErrNoChange):
		log.Info().Msg("database schema already current")
	default:
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// RunMigrationsDown rolls back the most recent migration.
func RunMigrationsDown(databaseURL, migrationsPath string) error {
	m, err := newMigrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}

	log.Info().Msg("database migration rolled back")
	return nil
}
