package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"interlink/internal/domain"
	"interlink/internal/repository/docstore"
)

// Options configures the Postgres docstore backend.
type Options struct {
	// URI is the Postgres connection string.
	URI string
	// Schema is the Postgres schema that holds every collection table.
	Schema string
	// Collections are created (if missing) right after connecting.
	Collections []docstore.CollectionSpec
	Logger      *slog.Logger
}

// Open returns a docstore.Opener that connects, pings and bootstraps the
// schema. Every failure is reported as a *domain.ConnectionError.
func Open(opts Options) docstore.Opener {
	return func(ctx context.Context) (docstore.Store, error) {
		if opts.URI == "" || opts.Schema == "" {
			return nil, &domain.ConnectionError{
				Driver: "postgres",
				Err:    errors.New("no database uri or name set"),
			}
		}

		pool, err := CreateConnectionPool(ctx, opts.URI)
		if err != nil {
			return nil, &domain.ConnectionError{Driver: "postgres", Err: err}
		}

		if err := EnsureSchema(ctx, NewTransactionManager(pool), opts.Schema, opts.Collections); err != nil {
			pool.Close()
			return nil, &domain.ConnectionError{Driver: "postgres", Err: err}
		}

		opts.Logger.Info("document store connected",
			"driver", "postgres",
			"schema", opts.Schema,
			"collections", len(opts.Collections),
		)

		return NewStore(pool, opts.Schema, opts.Logger), nil
	}
}

// CreateConnectionPool creates a new pgx connection pool with automatic PgBouncer compatibility.
//
// By default pgx caches prepared statements (QueryExecModeCacheStatement).
// PgBouncer in transaction pooling mode (port 6543 on hosted poolers) does not
// support prepared statements, so on that port the pool switches to
// QueryExecModeCacheDescribe: extended protocol (needed for jsonb parameters)
// without server-side prepared statements.
//
// An explicit ?default_query_exec_mode=... in the connection string wins over
// the auto-detection.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Configure pool size
	config.MaxConns = 25
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
