// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies pgx errors into [apperr.AppError] values so that
// repositories never leak SQL details to clients.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/apperr"
)

/*
Wrap maps err to the taxonomy:

  - no rows: NOT_FOUND for resource
  - check or not-null violation: VALIDATION_ERROR naming the column or constraint
  - anything else: INTERNAL_ERROR whose cause records action

Returns nil for a nil err.
*/
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			appError := apperr.ValidationError(resource+" violates a storage constraint",
				apperr.FieldError{Field: field, Message: pgErr.Message})
			appError.Cause = err
			return appError
		}
	}

	return apperr.Internal(fmt.Errorf("postgres: %s: %w", action, err))
}
