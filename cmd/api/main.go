// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Command api serves stored galleries and their rendered ComicInfo.xml documents.

Startup order: logger, configuration, Postgres, Redis, migrations, JWT public
key, Prometheus registry, services, HTTP server. Any failure before the server
listens exits with status 1 after a startup_failure log line. SIGINT and
SIGTERM trigger a graceful shutdown bounded by [constants.ShutdownTimeout].
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/taibuivan/yomira-galleryinfo/internal/api"
	"github.com/taibuivan/yomira-galleryinfo/internal/core/comicinfo"
	"github.com/taibuivan/yomira-galleryinfo/internal/core/hentai"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/config"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/logger"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/metrics"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/migration"
	pgstore "github.com/taibuivan/yomira-galleryinfo/internal/platform/postgres"
	redisstore "github.com/taibuivan/yomira-galleryinfo/internal/platform/redis"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/sec"
)

func main() {
	log := logger.SetDefault(os.Stdout, false)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	if err := run(log); err != nil {
		log.Error("startup_failure", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server_stopped_cleanly")
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Debug {
		log = logger.SetDefault(os.Stdout, true)
	}
	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Duration("comicinfo_cache_ttl", cfg.ComicInfoCacheTTL),
	)

	// Cancelled by SIGINT/SIGTERM; also bounds the rate limiter sweeper.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, cancelStartup := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancelStartup()

	// # Storage

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn("redis_close_failed", slog.Any("error", err))
		}
	}()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	verifier, err := sec.LoadTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return err
	}

	// # Metrics

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewCollector(registry)

	// # Services

	galleries := hentai.NewService(hentai.NewPostgresRepository(pool), recorder, log)
	documents := comicinfo.NewService(galleries, comicinfo.NewRedisCache(rdb), cfg.ComicInfoCacheTTL, recorder, log)
	galleries.OnImported(documents.OnGalleryImported)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context context.Context) error { return pgstore.Ping(context, pool) },
		CheckCache:    func(context context.Context) error { return redisstore.Ping(context, rdb) },
	}, log)

	// # HTTP

	server := api.NewServer(ctx, cfg, log, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.Handler(registry),
		Gallery:   hentai.NewHandler(galleries),
		ComicInfo: comicinfo.NewHandler(documents),
	})

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.ListenAndServe() }()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown_signal_received", slog.Duration("timeout", constants.ShutdownTimeout))
	}

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
