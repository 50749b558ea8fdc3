// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the rendered-document cache.

Rendered ComicInfo documents live here so that a library scanner polling the
same gallery repeatedly never reaches Postgres. Nothing stored in Redis is
authoritative: every entry can be rebuilt from the gallery table.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = time.Second
	pingTimeout = 2 * time.Second

	// Documents are small and requests are short; a narrow pool is enough.
	poolSize     = 8
	minIdleConns = 1
)

/*
NewClient parses redisURL, applies the cache tuning and pings the server.

Parameters:
  - context: bounds the initial ping
  - redisURL: redis:// or rediss:// URL, database index included
  - logger: receives the redis_client_connected event

Returns:
  - *redis.Client: a connected client the caller must Close
  - error: a parse or connectivity failure
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.ClientName = constants.AppName
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)
	return client, nil
}

// Ping checks the cache within a short deadline. Used by the readiness probe.
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	pingContext, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingContext).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
