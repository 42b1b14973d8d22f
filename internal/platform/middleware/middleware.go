// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP processing chain.

It acts as a series of decorators around the standard http.Handler, injecting
traceability, safety, and security into every request lifecycle.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Log: Structured Activity logging (slog).
  - Guard: Rate limiting and CORS validation.
  - Safe: Panic recovery to prevent server crashes.

This package ensures that domain handlers can focus purely on business logic
without worrying about infrastructure-level concerns.
*/
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/sitenav/internal/platform/constants"
	"github.com/taibuivan/sitenav/internal/platform/ctxutil"
	"github.com/taibuivan/sitenav/pkg/uuid"
)

// # Request Tracing

// maxRequestIDLength bounds client supplied IDs before they reach the logs.
const maxRequestIDLength = 128

// RequestID attaches a correlation ID to every request for log tracing.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Check if the client already provided an ID
			requestID := request.Header.Get(constants.HeaderXRequestID)

			// 2. Generate a new one if missing (UUIDv7 sorts by arrival time)
			if requestID == "" || len(requestID) > maxRequestIDLength {
				requestID = uuid.New()
			}

			// 3. Inject into context and response headers
			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status   int
	username string
}

// identified lets Authenticate report the verified username upwards.
type identified interface {
	setUsername(name string)
}

func (recorder *statusRecorder) setUsername(name string) {
	recorder.username = name
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// StructuredLogger logs every request status and performance metrics.
// It also injects a request-specific logger into the context.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			startTime := time.Now()
			rid := ctxutil.GetRequestID(request.Context())
			ip := RealIP(request)

			// 1. Create a sub-logger for this specific request
			requestLogger := logger.With(
				slog.String("request_id", rid),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", ip),
			)

			// 2. Inject this logger into the context for downstream use
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			// 3. Proceed to downstream handlers with the enriched context
			next.ServeHTTP(wrappedWriter, request.WithContext(ctx))

			// 4. Final log entry after the request is finished
			latency := time.Since(startTime).Milliseconds()
			logLevel := slog.LevelInfo

			if wrappedWriter.status >= 500 {
				logLevel = slog.LevelError
			} else if wrappedWriter.status >= 400 {
				logLevel = slog.LevelWarn
			}

			// Enlist final response metrics
			logAtters := []any{
				slog.Int("status", wrappedWriter.status),
				slog.Int64("latency_ms", latency),
				slog.String("user_agent", request.UserAgent()),
			}

			// Add the admin identity if the request is authenticated.
			// Authenticate runs further down the chain, so read the claims it
			// left on the recorder.
			if wrappedWriter.username != "" {
				logAtters = append(logAtters, slog.String("admin", wrappedWriter.username))
			}

			requestLogger.Log(ctx, logLevel, "http_request_finished", logAtters...)
		})
	}
}

// # Rate Limiting

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	limit   rate.Limit
	burst   int
}

// allow reports whether ip may proceed, creating its bucket on first sight.
func (limiter *ipLimiter) allow(ip string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	clientInfo, found := limiter.clients[ip]
	if !found {
		clientInfo = &rateLimitClient{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.clients[ip] = clientInfo
	}

	clientInfo.lastSeen = now
	return clientInfo.limiter.AllowN(now, 1)
}

// sweep drops clients idle for longer than ttl.
func (limiter *ipLimiter) sweep(now time.Time, ttl time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for ip, clientInfo := range limiter.clients {
		if now.Sub(clientInfo.lastSeen) > ttl {
			delete(limiter.clients, ip)
		}
	}
}

// RateLimit limits requests per IP using the token bucket algorithm with the
// default budget.
func RateLimit(context context.Context) func(http.Handler) http.Handler {
	return RateLimitWith(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
}

// RateLimitWith limits requests per IP to rps with the given burst.
//
// Every call owns its own buckets, so a stricter limiter can be mounted on a
// single route without sharing state with the global one.
func RateLimitWith(context context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	limiter := &ipLimiter{
		clients: make(map[string]*rateLimitClient),
		limit:   rate.Limit(rps),
		burst:   burst,
	}

	// Start a background cleanup routine that respects context cancellation
	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				limiter.sweep(now, constants.RateLimitClientTTL)
			case <-context.Done():
				// Stop the goroutine when the application shuts down
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !limiter.allow(RealIP(request), time.Now()) {
				writeError(writer, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Reliability & Safety

// PanicRecovery recovers from panics, logs stack trace, and returns 500.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// Defer a recovery function to catch any runtime exceptions
			defer func() {
				if err := recover(); err != nil {

					// Capture the runtime stack trace for diagnostics
					stackTrace := make([]byte, 2048)
					length := runtime.Stack(stackTrace, false)

					// Retrieve the request-specific logger from context if available
					reqLogger := ctxutil.GetLogger(request.Context())

					// Log the incident to our structured logging system
					reqLogger.ErrorContext(request.Context(), "panic_recovered",
						slog.Any("error", err),
						slog.String("stack", string(stackTrace[:length])),
					)

					// Return a safe, generic error to the client
					writeError(writer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
				}
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig defines the behavior needed by the CORS middleware.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

// CORS handles Cross-Origin Resource Sharing based on application environment.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	allowed := make(map[string]bool)
	for _, origin := range cfg.AllowedOrigins() {
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Check the Origin header
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Check if the origin is allowed (listed origins, open in DEV)
			isAllowed := cfg.IsDevelopment() || allowed[origin]

			// 3. Inject standard CORS headers if authorized
			if isAllowed {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Authorization, X-Request-ID")
				header.Add("Vary", constants.HeaderOrigin)
				header.Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
			}

			// 4. Handle pre-flight requests (OPTIONS)
			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Middleware Helpers

// RealIP extracts client IP, respecting common proxy headers.
func RealIP(request *http.Request) string {

	// Check standard proxy headers first
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	// Fallback to the direct connection's address
	host, _, _ := net.SplitHostPort(request.RemoteAddr)
	return host
}

// writeError outputs a simple JSON error payload.
func writeError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  code,
		constants.FieldError: message,
	})
}
