package store

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // migrate driver
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"  // migrate driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies every pending migration for the given driver.
func Migrate(driver, dsn string) error {
	databaseURL, err := migrationURL(driver, dsn)
	if err != nil {
		return err
	}

	dir, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("failed to access migrations directory: %w", err)
	}

	source, err := iofs.New(dir, ".")
	if err != nil {
		return fmt.Errorf("failed to create source driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	upErr := m.Up()
	if upErr == nil {
		version, _, _ := m.Version()
		log.Info("applied migrations", "driver", driver, "version", version)
	}

	srcErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	if srcErr != nil {
		return fmt.Errorf("failed to close source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}

	return nil
}

func migrationURL(driver, dsn string) (string, error) {
	switch driver {
	case DriverSQLite:
		if dsn == "" || dsn == ":memory:" {
			return "", errors.New("sqlite3 needs a file path, use the memory store instead")
		}

		path := filepath.ToSlash(dsn)
		if filepath.IsAbs(dsn) && path[0] != '/' {
			path = "/" + path
		}
		return "sqlite3://" + path, nil
	case DriverPostgres:
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}
