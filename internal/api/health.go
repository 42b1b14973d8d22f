// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/sitenav/internal/platform/respond"
)

// readinessTimeout bounds each dependency check of /ready.
const readinessTimeout = 2 * time.Second

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings the Redis client. Nil with the in-memory cache.
	CheckCache func(ctx context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 2)
	isSystemReady := true

	checks := []struct {
		name  string
		check func(ctx context.Context) error
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	for _, dependency := range checks {
		if dependency.check == nil {
			continue
		}

		result := checkResult{Name: dependency.name, IsOK: true}
		if err := handler.run(request.Context(), dependency.check); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", dependency.name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	responseStatus := "ready"
	httpStatus := http.StatusOK
	if !isSystemReady {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, respond.SuccessEnvelope{Data: map[string]any{
		"status": responseStatus,
		"checks": results,
	}})
}

func (handler *healthHandler) run(parent context.Context, check func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, readinessTimeout)
	defer cancel()
	return check(ctx)
}
