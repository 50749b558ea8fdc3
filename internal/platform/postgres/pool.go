// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postgres opens the connection pool behind gallery storage.

Repositories receive the [*pgxpool.Pool] through their constructors; nothing
else in the tree dials the database.
*/
package postgres

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
)

// Renders are served from Redis, so the database sees cache misses, list
// queries and imports only.
const (
	maxConns        = 8
	minConns        = 1
	maxConnLifetime = time.Hour
	maxConnIdleTime = 10 * time.Minute
	connectTimeout  = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

/*
NewPool parses dsn, tunes the pool and verifies the server answers.

Each new connection is tagged with the application name and gets a statement
timeout equal to [constants.GlobalRequestTimeout], so a stuck query cannot
outlive the request that issued it.

Returns:
  - *pgxpool.Pool: a connected pool the caller must Close
  - error: a DSN, dial or ping failure
*/
func NewPool(context stdctx.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	config.MaxConns = maxConns
	config.MinConns = minConns
	config.MaxConnLifetime = maxConnLifetime
	config.MaxConnIdleTime = maxConnIdleTime
	config.ConnConfig.ConnectTimeout = connectTimeout
	config.ConnConfig.RuntimeParams["application_name"] = constants.AppName
	config.AfterConnect = applyStatementTimeout

	pool, err := pgxpool.NewWithConfig(context, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(context, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("host", config.ConnConfig.Host),
		slog.String("database", config.ConnConfig.Database),
		slog.Int("max_conns", int(config.MaxConns)),
	)
	return pool, nil
}

func applyStatementTimeout(context stdctx.Context, connection *pgx.Conn) error {
	statement := fmt.Sprintf("SET statement_timeout = %d", constants.GlobalRequestTimeout.Milliseconds())
	_, err := connection.Exec(context, statement)
	return err
}

// Ping checks the pool within a short deadline. Used by the readiness probe.
func Ping(context stdctx.Context, pool *pgxpool.Pool) error {
	pingContext, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingContext); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}
