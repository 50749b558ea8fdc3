// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/middleware"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/sec"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

/*
TestRequestID_GeneratesAndPreserves checks both the generated and the
client-supplied correlation ID paths.
*/
func TestRequestID_GeneratesAndPreserves(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-42")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "req-42", seen)
}

/*
TestRequestID_ReplacesUnsafeIDs never lets a caller put spaces, control bytes
or oversized values into log lines.
*/
func TestRequestID_ReplacesUnsafeIDs(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	for _, unsafe := range []string{"two words", "line\nbreak", strings.Repeat("x", 65)} {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRequestID, unsafe)
		handler.ServeHTTP(httptest.NewRecorder(), request)

		assert.NotEqual(t, unsafe, seen)
		assert.Len(t, seen, 36)
	}
}

/*
TestStructuredLogger_LogsStatus verifies the request log line and level.
*/
func TestStructuredLogger_LogsStatus(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/galleries/9", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "http_request_finished", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, float64(404), entry["status"])
	assert.Equal(t, "/api/v1/galleries/9", entry["path"])
	assert.Equal(t, float64(0), entry["bytes"])
}

/*
TestRateLimiter_RejectsOverBudget exhausts a tiny bucket and expects 429.
*/
func TestRateLimiter_RejectsOverBudget(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter(ctx, 0.001, 2)
	handler := limiter.Middleware(okHandler)

	statuses := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5000"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, request)
		statuses = append(statuses, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
	assert.Equal(t, "1", last.Header().Get("Retry-After"))

	// A different client has its own bucket.
	assert.True(t, limiter.Allow("10.0.0.2"))
}

/*
TestRateLimiter_JanitorStops verifies the cleanup goroutine exits on cancel.
*/
func TestRateLimiter_JanitorStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	middleware.NewRateLimiter(ctx, 10, 10)
	cancel()
}

/*
TestPanicRecovery_Returns500 ensures a panicking handler yields the JSON error envelope.
*/
func TestPanicRecovery_Returns500(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

type corsConfig struct {
	development bool
	suffix      string
}

func (c corsConfig) IsDevelopment() bool { return c.development }

func (c corsConfig) OriginAllowed(origin string) bool {
	return len(origin) >= len(c.suffix) && origin[len(origin)-len(c.suffix):] == c.suffix
}

/*
TestCORS covers allowed, rejected and pre-flight requests.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		config      corsConfig
		method      string
		origin      string
		wantAllowed bool
		wantStatus  int
	}{
		{"allowed_origin", corsConfig{suffix: "yomira.app"}, http.MethodGet, "https://reader.yomira.app", true, http.StatusOK},
		{"foreign_origin", corsConfig{suffix: "yomira.app"}, http.MethodGet, "https://evil.example", false, http.StatusOK},
		{"development_open", corsConfig{development: true, suffix: "yomira.app"}, http.MethodGet, "http://localhost:3000", true, http.StatusOK},
		{"preflight", corsConfig{suffix: "yomira.app"}, http.MethodOptions, "https://yomira.app", true, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.config)(okHandler).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantAllowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestRealIP checks header precedence.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.3")
	assert.Equal(t, "198.51.100.3", middleware.RealIP(request))
}

type fakeVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (f fakeVerifier) VerifyToken(string) (*sec.AuthClaims, error) { return f.claims, f.err }

/*
TestAuthenticateAndRequireRole walks the admin guard through each outcome.
*/
func TestAuthenticateAndRequireRole(t *testing.T) {
	admin := &sec.AuthClaims{UserID: "u-1", Role: string(sec.RoleAdmin)}
	member := &sec.AuthClaims{UserID: "u-2", Role: string(sec.RoleMember)}

	tests := []struct {
		name       string
		verifier   fakeVerifier
		header     string
		wantStatus int
	}{
		{"anonymous", fakeVerifier{}, "", http.StatusUnauthorized},
		{"bad_scheme", fakeVerifier{claims: admin}, "Basic abc", http.StatusUnauthorized},
		{"empty_token", fakeVerifier{claims: admin}, "Bearer   ", http.StatusUnauthorized},
		{"invalid_token", fakeVerifier{err: errors.New("expired")}, "Bearer abc", http.StatusUnauthorized},
		{"member", fakeVerifier{claims: member}, "Bearer abc", http.StatusForbidden},
		{"admin", fakeVerifier{claims: admin}, "bearer abc", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Authenticate(tt.verifier)(middleware.RequireRole(sec.RoleAdmin)(okHandler))

			request := httptest.NewRequest(http.MethodPut, "/", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
