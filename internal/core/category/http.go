// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/sitenav/internal/platform/request"
	"github.com/taibuivan/sitenav/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes categories over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public category endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listCategories)
	return router
}

// AdminRoutes returns the category management endpoints. The caller mounts
// them behind the admin role check.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.createCategory)
	router.Patch("/{id}", handler.updateCategory)
	return router
}

/*
GET /api/v1/categories.

Request:
  - refresh: bool (bypass the read cache)

Response:
  - 200: []Category ordered by sort order
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.List(request.Context(), !requestutil.Bool(request, "refresh"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

/*
POST /api/v1/admin/categories.

Response:
  - 201: Category
  - 400: VALIDATION_ERROR
  - 409: CONFLICT when the id is taken
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

/*
PATCH /api/v1/admin/categories/{id}.

Response:
  - 200: Category
  - 404: NOT_FOUND
*/
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}
