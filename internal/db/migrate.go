package db

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationState is the schema version recorded by golang-migrate.
// Version 0 with Dirty false means no migration has been applied.
type MigrationState struct {
	Version uint
	Dirty   bool
}

// Run applies every pending up migration. Already being at the latest version is not an error.
func Run(databaseURL string) error {
	return withMigrator(databaseURL, "apply migrations", func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// Rollback reverts the last steps migrations.
func Rollback(databaseURL string, steps int) error {
	if steps <= 0 {
		return oops.With("steps", steps).Errorf("rollback needs a positive step count")
	}
	return withMigrator(databaseURL, "roll back migrations", func(m *migrate.Migrate) error {
		return m.Steps(-steps)
	})
}

// Status reports the current schema version.
func Status(databaseURL string) (MigrationState, error) {
	var st MigrationState
	err := withMigrator(databaseURL, "read migration version", func(m *migrate.Migrate) error {
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		st = MigrationState{Version: v, Dirty: dirty}
		return err
	})
	return st, err
}

func withMigrator(databaseURL, op string, fn func(*migrate.Migrate) error) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return oops.With("operation", "open migration source").Wrap(err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return oops.With("operation", "init migrations").Wrap(err)
	}
	defer m.Close()

	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return oops.With("operation", op).Wrap(err)
	}
	return nil
}
