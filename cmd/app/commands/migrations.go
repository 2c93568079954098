package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/allisson/schoolsite/migrations"
)

// RunMigrations applies all pending migrations embedded in the binary for
// driver ("postgres" or "mysql"). Returns nil when there is nothing to apply.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	var dir string
	switch driver {
	case "postgres":
		dir = "postgresql"
	case "mysql":
		dir = "mysql"
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
