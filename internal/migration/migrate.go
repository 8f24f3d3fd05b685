package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunMigrations applies the embedded schema migrations. driverName selects
// the dialect and must match the open connection ("postgres" or "sqlite3").
func RunMigrations(sqlDB *sql.DB, driverName string) error {
	source, err := iofs.New(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	var driver database.Driver
	switch driverName {
	case "postgres":
		driver, err = migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	case "sqlite3":
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	default:
		return fmt.Errorf("unsupported migration driver %q", driverName)
	}
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
