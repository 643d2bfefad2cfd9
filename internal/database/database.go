package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSqlite3  = "sqlite3"
)

// SupportedDriver reports whether driverName is a database/sql driver the
// repository and its migrations know how to use.
func SupportedDriver(driverName string) bool {
	switch driverName {
	case DriverPostgres, DriverPgx, DriverSqlite3:
		return true
	}
	return false
}

type SqlChatRepository struct {
	conn       *sqlx.DB
	driverName string
	now        func() time.Time
}

// NewSqlChatRepository opens and pings a connection pool for the given driver.
// Postgres is reachable through either lib/pq ("postgres") or pgx ("pgx").
func NewSqlChatRepository(driverName, dsn string) (*SqlChatRepository, error) {
	if !SupportedDriver(driverName) {
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if driverName == DriverSqlite3 {
		// sqlite allows a single writer; serialize access through one connection
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &SqlChatRepository{
		conn:       db,
		driverName: driverName,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (db *SqlChatRepository) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

func (db *SqlChatRepository) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back if fn or the commit fails.
func (db *SqlChatRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
