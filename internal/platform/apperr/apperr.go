// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error taxonomy shared by every galleryinfo handler.

An [AppError] pairs a machine-readable code with the HTTP status it maps to and
a message that is safe to show a client. Storage and mapping failures are
wrapped into one before they leave a service, so [respond.Error] never has to
guess a status.

Two classes of 500 exist:

  - INTERNAL_ERROR: something unexpected broke (database down, bug).
  - DATA_INTEGRITY: a stored gallery breaks an invariant of the ComicInfo
    schema, e.g. an upload date whose year does not fit the Year element.
    Retrying will not help; the record itself must be fixed.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Codes

const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeValidation      = "VALIDATION_ERROR"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
	CodeDataIntegrity   = "DATA_INTEGRITY"
)

// AppError carries everything [respond.Error] needs to build the JSON envelope.
// Cause is logged server-side and never serialised.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError names one payload field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes Cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource as "<resource> not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, msg)
}

// ValidationError is a 400 listing the offending fields in Details.
func ValidationError(msg string, details ...FieldError) *AppError {
	appError := newError(http.StatusBadRequest, CodeValidation, msg)
	appError.Details = details
	return appError
}

func PayloadTooLarge(limit int64) *AppError {
	return newError(http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
		fmt.Sprintf("Request body exceeds %d bytes", limit))
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	appError := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// Integrity reports a stored record that cannot be rendered as it stands.
func Integrity(cause error) *AppError {
	appError := newError(http.StatusInternalServerError, CodeDataIntegrity, "Stored record violates a data invariant")
	appError.Cause = cause
	return appError
}

// # Helpers

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// HasCode reports whether err's chain holds an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}
