// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sitenav/internal/core/category"
	requestutil "github.com/taibuivan/sitenav/internal/platform/request"
	"github.com/taibuivan/sitenav/internal/platform/respond"
	"github.com/taibuivan/sitenav/pkg/pagination"
	"github.com/taibuivan/sitenav/pkg/query"
)

// # Handler Implementation

// Handler exposes the directory views over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new directory [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public directory endpoints on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/sites", handler.browse)
	router.Get("/sites/grouped", handler.grouped)
	router.Get("/tags", handler.tags)
}

// RegisterAdminRoutes registers the admin table endpoint on router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/sites", handler.adminSites)
}

// FilterStateFromRequest reads category, q and tags query parameters. Tags
// may repeat or be comma separated.
func FilterStateFromRequest(request *http.Request) FilterState {
	values := request.URL.Query()

	state := DefaultFilterState()
	if id := values.Get("category"); id != "" {
		state.CategoryID = id
	}
	state.Query = values.Get("q")
	state.Tags = query.Strings(values["tags"])
	return state
}

/*
GET /api/v1/sites.

Request:
  - category: string (default "all")
  - q: string (substring over title, subtitle, url, tags)
  - tags: string list (OR of tag substrings)
  - refresh: bool (bypass the read cache)

Response:
  - 200: Listing
*/
func (handler *Handler) browse(writer http.ResponseWriter, request *http.Request) {
	listing, err := handler.service.Browse(request.Context(), FilterStateFromRequest(request), !requestutil.Bool(request, "refresh"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, listing)
}

// grouped handles GET /api/v1/sites/grouped with the same filter as browse.
func (handler *Handler) grouped(writer http.ResponseWriter, request *http.Request) {
	groups, err := handler.service.Grouped(request.Context(), FilterStateFromRequest(request), !requestutil.Bool(request, "refresh"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, groups)
}

/*
GET /api/v1/tags.

Response:
  - 200: []TagCount, most used first
*/
func (handler *Handler) tags(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.Tags(request.Context(), !requestutil.Bool(request, "refresh"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, counts)
}

/*
GET /api/v1/admin/sites.

Request:
  - q: string (title or url)
  - category: string
  - status: all | active | inactive
  - page, limit: int

Response:
  - 200: {items, stats} with pagination meta
*/
func (handler *Handler) adminSites(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	filter := AdminFilter{
		Query:      values.Get("q"),
		CategoryID: values.Get("category"),
		Status:     Status(values.Get("status")),
	}
	if filter.CategoryID == "" {
		filter.CategoryID = category.AllID
	}

	listing, err := handler.service.Admin(request.Context(), filter, pagination.FromRequest(request), !requestutil.Bool(request, "refresh"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, listing, listing.Meta)
}
