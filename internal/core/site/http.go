// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/sitenav/internal/platform/request"
	"github.com/taibuivan/sitenav/internal/platform/respond"
	"github.com/taibuivan/sitenav/internal/platform/validate"
)

// # Handler Implementation

// Handler exposes single-site reads and site management over HTTP. Listing
// and filtering live in the directory handler.
type Handler struct {
	service *Service
}

// NewHandler constructs a new site [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public site endpoints on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/sites/{id}", handler.getSite)
	router.Get("/sites/{id}/icons", handler.getIcons)
}

// RegisterAdminRoutes registers the site management endpoints. The caller
// guards router with the admin role check.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/sites", handler.createSite)
	router.Put("/sites/{id}", handler.updateSite)
	router.Patch("/sites/{id}/active", handler.setActive)
	router.Delete("/sites/{id}", handler.deleteSite)
}

/*
GET /api/v1/sites/{id}.

Response:
  - 200: Site
  - 404: NOT_FOUND
*/
func (handler *Handler) getSite(writer http.ResponseWriter, request *http.Request) {
	site, err := handler.service.Find(request.Context(), requestutil.Param(request, "id"), !requestutil.Bool(request, "refresh"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, site)
}

/*
GET /api/v1/sites/{id}/icons.

Response:
  - 200: Icons (favicon candidates, best first, and an SVG placeholder)
  - 404: NOT_FOUND
*/
func (handler *Handler) getIcons(writer http.ResponseWriter, request *http.Request) {
	icons, err := handler.service.Icons(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, icons)
}

/*
POST /api/v1/admin/sites.

Response:
  - 201: Site
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) createSite(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, site)
}

/*
PUT /api/v1/admin/sites/{id}.

Description: Replaces every editable field. An omitted is_active keeps the
current visibility.
*/
func (handler *Handler) updateSite(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, site)
}

/*
PATCH /api/v1/admin/sites/{id}/active.

Request:
  - is_active: bool (required)
*/
func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		IsActive *bool `json:"is_active"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if body.IsActive == nil {
		respond.Error(writer, request, validate.RequiredError(FieldIsActive, "This field is required"))
		return
	}

	site, err := handler.service.SetActive(request.Context(), requestutil.Param(request, "id"), *body.IsActive)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, site)
}

// deleteSite handles DELETE /api/v1/admin/sites/{id}.
func (handler *Handler) deleteSite(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
