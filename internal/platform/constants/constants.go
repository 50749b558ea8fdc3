// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared by the API server and the
// batch CLI: identity, timeouts, rate limits, header names and the ComicInfo
// export names Komga expects.
package constants

import "time"

// # Identity

const (
	// AppName tags every log line, the Postgres application_name and the Redis client name.
	AppName    = "galleryinfo"
	AppVersion = "0.3.0"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds a whole request and, through statement_timeout, its SQL.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds connecting to Postgres and Redis.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// Per client IP. A library scan of a few thousand galleries stays under this.
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim expected in admin JWTs.
	AuthIssuer = "yomira.app"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Request Body Limits

const (
	// MaxPayloadBytes caps uploaded gallery payloads. Real payloads are a few KiB.
	MaxPayloadBytes = 1 << 20
)

// # Health Response Keys

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # ComicInfo Export

const (
	// ComicInfoFileName is the file name Komga looks for inside a CBZ archive.
	ComicInfoFileName = "ComicInfo.xml"

	// ContentTypeXML is the media type of rendered ComicInfo documents.
	ContentTypeXML = "application/xml; charset=utf-8"
)

// # Redis Keys

const (
	// RedisPrefixComicInfo prefixes cached documents: comicinfo:<gallery id>:<generation>.
	RedisPrefixComicInfo = "comicinfo:"

	// RedisPrefixComicInfoGeneration prefixes invalidation counters: comicinfo:gen:<gallery id>.
	RedisPrefixComicInfoGeneration = "comicinfo:gen:"
)
