// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sitenav/internal/platform/apperr"
	"github.com/taibuivan/sitenav/internal/platform/ctxutil"
	"github.com/taibuivan/sitenav/internal/platform/respond"
	"github.com/taibuivan/sitenav/internal/platform/retrycache"
)

// CacheInfo is the admin view of the shared read cache.
type CacheInfo struct {
	TTLSeconds       float64          `json:"ttl_seconds"`
	MaxRetries       int              `json:"max_retries"`
	RetryBaseDelayMS int64            `json:"retry_base_delay_ms"`
	Stats            retrycache.Stats `json:"stats"`
}

type cacheHandler struct {
	client *retrycache.Client
}

// cacheRoutes exposes cache inspection and manual invalidation to admins.
func cacheRoutes(client *retrycache.Client) chi.Router {
	handler := &cacheHandler{client: client}
	router := chi.NewRouter()
	router.Get("/", handler.info)
	router.Delete("/", handler.invalidate)
	return router
}

// info handles GET /api/v1/admin/cache.
func (handler *cacheHandler) info(writer http.ResponseWriter, request *http.Request) {
	config := handler.client.Config()
	respond.OK(writer, CacheInfo{
		TTLSeconds:       config.TTL.Seconds(),
		MaxRetries:       config.MaxRetries,
		RetryBaseDelayMS: config.RetryBaseDelay.Milliseconds(),
		Stats:            handler.client.Stats(),
	})
}

// invalidate handles DELETE /api/v1/admin/cache.
func (handler *cacheHandler) invalidate(writer http.ResponseWriter, request *http.Request) {
	if err := handler.client.Invalidate(request.Context()); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "cache_invalidation_failed", slog.Any("error", err))
		respond.Error(writer, request, apperr.ServiceUnavailable("Cache could not be cleared"))
		return
	}

	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "cache_invalidated_manually",
		slog.String("request_id", ctxutil.GetRequestID(request.Context())))
	respond.NoContent(writer)
}
