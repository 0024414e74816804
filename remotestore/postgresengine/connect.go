package postgresengine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // driver import
)

// ErrConnectingFailed is returned when no connection can be established from a DSN.
var ErrConnectingFailed = errors.New("connecting to the remote store failed")

const driverPostgres = "postgres"

// ConnectPGXPool opens a pgx connection pool from a DSN.
// This is the recommended way to run the engine.
func ConnectPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	return pool, nil
}

// ConnectSQLDB opens a database/sql connection (lib/pq driver) from a DSN.
func ConnectSQLDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverPostgres, dsn)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	return db, nil
}

// ConnectSQLX opens a sqlx connection (lib/pq driver) from a DSN.
func ConnectSQLX(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverPostgres, dsn)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	return db, nil
}
