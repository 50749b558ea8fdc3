// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres_scheme", "postgres://u:p@db:5432/galleryinfo", "pgx5://u:p@db:5432/galleryinfo"},
		{"postgresql_scheme", "postgresql://u:p@db/galleryinfo?sslmode=disable", "pgx5://u:p@db/galleryinfo?sslmode=disable"},
		{"already_pgx5", "pgx5://u:p@db/galleryinfo", "pgx5://u:p@db/galleryinfo"},
		{"keyword_dsn", "host=db user=u dbname=galleryinfo", "host=db user=u dbname=galleryinfo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPgx5DSN(tt.dsn))
		})
	}
}

func TestMigrateLogger_WritesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l := newMigrateLogger(logger)
	l.Printf("Start buffering %d/u %s\n", 1, "create_gallery")

	assert.True(t, l.Verbose())
	assert.Contains(t, buf.String(), `"msg":"Start buffering 1/u create_gallery"`)
}

func TestMigrateLogger_QuietAtInfo(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	assert.False(t, newMigrateLogger(logger).Verbose())
}
