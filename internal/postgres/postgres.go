package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/subbridge/subbridge/internal/config"
	"github.com/subbridge/subbridge/internal/logger"
)

// DB wraps sqlx.DB and traces every query through the logger
type DB struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewDB opens a postgres handle using the configured DSN. The connection itself is
// established on first use, so an unreachable database surfaces as query errors.
func NewDB(config *config.Configuration, logger *logger.Logger) (*DB, error) {
	db, err := sqlx.Open("postgres", config.Postgres.GetDSN())
	if err != nil {
		return nil, err
	}
	return &DB{db: db, logger: logger}, nil
}

// NewFromSQL wraps an already opened *sql.DB, e.g. a sqlmock connection.
func NewFromSQL(db *sql.DB, logger *logger.Logger) *DB {
	return &DB{db: sqlx.NewDb(db, "postgres"), logger: logger}
}

// Close closes the database connection
func (d *DB) Close() {
	if err := d.db.Close(); err != nil {
		d.logger.Errorw("error closing database", "error", err)
	}
}

// GetContext runs a single-row query and scans it into dest
func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	tracer := NewQueryTracer(d.logger, query, args)
	err := d.db.GetContext(ctx, dest, query, args...)
	tracer.Done(err)
	return err
}

// ExecContext runs a statement that returns no rows
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	tracer := NewQueryTracer(d.logger, query, args)
	result, err := d.db.ExecContext(ctx, query, args...)
	tracer.Done(err)
	return result, err
}
