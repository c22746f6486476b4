package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"expensetracker/internal/apperrors"
)

// DB wraps the pgx connection pool. Each operation checks a connection out of
// the pool and returns it when done, so no session outlives a single call.
type DB struct {
	Pool *pgxpool.Pool
}

// New connects to Postgres and verifies the connection with a ping. Failures
// are reported as a ConnectionError and leave nothing to clean up.
func New(ctx context.Context, uri string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, &apperrors.ConnectionError{Err: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &apperrors.ConnectionError{Err: err}
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}
