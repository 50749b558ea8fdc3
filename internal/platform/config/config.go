// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config reads the API server's settings from the environment.

	DATABASE_URL           required  postgres:// URL or keyword DSN
	REDIS_URL              required  redis:// URL of the document cache
	JWT_PUBLIC_KEY_PATH    required  PEM RSA public key of the main Yomira API
	SERVER_PORT            8080
	ENVIRONMENT            development | production
	DEBUG                  false
	MIGRATION_PATH         ./data/migrations
	COMICINFO_CACHE_TTL    24h       Go duration, must be positive
	ALLOWED_ORIGIN_SUFFIX  yomira.app

The batch CLI reads no environment; it takes flags.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded once at startup and treated as read-only afterwards.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`

	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	RedisURL          string        `env:"REDIS_URL,required,notEmpty"`
	ComicInfoCacheTTL time.Duration `env:"COMICINFO_CACHE_TTL" envDefault:"24h"`

	// JWTPubKeyPath verifies admin tokens issued by the main Yomira API.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`

	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"yomira.app"`
}

// Load parses the environment and rejects settings that would start a
// broken server.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.ComicInfoCacheTTL <= 0 {
		return nil, fmt.Errorf("config: COMICINFO_CACHE_TTL must be positive, got %s", cfg.ComicInfoCacheTTL)
	}
	cfg.AllowedOriginSuffix = strings.TrimSpace(cfg.AllowedOriginSuffix)

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Environment == "development" }

func (c *Config) IsProduction() bool { return c.Environment == "production" }

// OriginAllowed reports whether a CORS origin ends with the configured suffix.
// An empty suffix allows nothing.
func (c *Config) OriginAllowed(origin string) bool {
	return c.AllowedOriginSuffix != "" && strings.HasSuffix(origin, c.AllowedOriginSuffix)
}
