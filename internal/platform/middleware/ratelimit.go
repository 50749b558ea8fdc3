// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/apperr"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/respond"
)

const retryAfterSeconds = 1

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than [constants.RateLimitClientTTL] are swept periodically.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	limit rate.Limit
	burst int
}

// NewRateLimiter starts the sweeper goroutine; it stops when context is done.
func NewRateLimiter(context context.Context, rps float64, burst int) *RateLimiter {
	limiter := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(rps),
		burst:   burst,
	}
	go limiter.sweepEvery(context, constants.RateLimitCleanupInterval)
	return limiter
}

// RateLimit is [NewRateLimiter] with the server defaults, as middleware.
func RateLimit(context context.Context) func(http.Handler) http.Handler {
	return NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst).Middleware
}

func (limiter *RateLimiter) sweepEvery(context context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-context.Done():
			return
		case now := <-ticker.C:
			limiter.sweep(now.Add(-constants.RateLimitClientTTL))
		}
	}
}

// sweep drops buckets not used since cutoff.
func (limiter *RateLimiter) sweep(cutoff time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for ip, entry := range limiter.buckets {
		if entry.lastSeen.Before(cutoff) {
			delete(limiter.buckets, ip)
		}
	}
}

// Allow spends one token from clientIP's bucket.
func (limiter *RateLimiter) Allow(clientIP string) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	entry, ok := limiter.buckets[clientIP]
	if !ok {
		entry = &bucket{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.buckets[clientIP] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// Middleware answers 429 RATE_LIMITED with Retry-After once a client's bucket is empty.
func (limiter *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !limiter.Allow(RealIP(request)) {
			writer.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
			respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
