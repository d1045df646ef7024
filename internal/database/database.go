// Package database centralises sqlx connection helpers for the PostgreSQL
// store named by DATABASE_URL.  The driver is lib/pq, which accepts both
// `postgres://` and `postgresql://` URIs.
//
// Public entry points:
//
//	Open(dsn)                      – lazy pool with conservative sizes.
//	OpenWithOptions(dsn, opts)     – fine-grained control.
//	Ping(db)                       – readiness check for /health/ready.
//
// Opening never dials.  The first Ping or query does, so a missing database
// cannot stop the service from starting.  Callers should Close() the
// returned *sqlx.DB when no longer needed.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const driverName = "postgres"

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultOptions are used by Open: 15 max open, 5 idle, and a 30-minute
// connection lifetime.
var DefaultOptions = Options{
	MaxOpenConns:    15,
	MaxIdleConns:    5,
	ConnMaxLifetime: 30 * time.Minute,
}

// Open returns a lazily-connecting *sqlx.DB with DefaultOptions.
func Open(dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(dsn, DefaultOptions)
}

// OpenWithOptions returns a lazily-connecting *sqlx.DB tuned by opts.
func OpenWithOptions(dsn string, opts Options) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	Configure(db, opts)
	return db, nil
}

// Configure applies opts to an existing pool.
func Configure(db *sqlx.DB, opts Options) {
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
}

// Ping returns a readiness check bound to db.
func Ping(db *sqlx.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("database: ping: %w", err)
		}
		return nil
	}
}
