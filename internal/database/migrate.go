package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies all pending schema migrations for the given driver. It uses
// its own connection, which is closed before returning.
func Migrate(driverName, dsn string) error {
	dir := driverName
	if driverName == DriverPgx {
		dir = DriverPostgres
	}

	src, err := iofs.New(migrationsFS, "migrations/"+dir)
	if err != nil {
		return fmt.Errorf("load migrations for %q: %w", driverName, err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		src.Close()
		return fmt.Errorf("open migration connection: %w", err)
	}

	var driver migratedb.Driver
	switch driverName {
	case DriverPostgres, DriverPgx:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case DriverSqlite3:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("unsupported database driver %q", driverName)
	}
	if err != nil {
		src.Close()
		db.Close()
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, driver)
	if err != nil {
		src.Close()
		driver.Close()
		return fmt.Errorf("new migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}
