// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and admin identity.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "sitenav-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// It must leave room for the worst-case retry backoff of a cached read.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// LoginRateLimitRPS throttles admin login attempts per IP.
	LoginRateLimitRPS = 0.2

	// LoginRateLimitBurst allows a handful of typos before throttling.
	LoginRateLimitBurst = 5

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "sitenav"

	// AdminSubject is the JWT subject of the single configured administrator.
	AdminSubject = "admin"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json; charset=utf-8"
	AuthSchemeBearer    = "bearer"
)

// # JSON Field Identifiers

const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixCache namespaces entries written by the cached retry client.
	RedisPrefixCache = "sitenav:cache:"
)
