// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sitenav/internal/platform/middleware"
	requestutil "github.com/taibuivan/sitenav/internal/platform/request"
	"github.com/taibuivan/sitenav/internal/platform/respond"
	"github.com/taibuivan/sitenav/internal/platform/sec"
	"github.com/taibuivan/sitenav/internal/platform/validate"
)

// Handler implements the administrator login endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login : Authenticates and returns a JWT. Throttled by loginLimiter.
//   - GET  /me    : Echoes the verified admin identity.
func (handler *Handler) Routes(loginLimiter func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.With(loginLimiter).Post("/login", handler.login)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Get("/me", handler.me)

	return router
}

/*
POST /api/v1/auth/login.

Response:
  - 200: Session
  - 400: VALIDATION_ERROR when a credential is missing
  - 401: UNAUTHORIZED for bad credentials
  - 429: RATE_LIMITED
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.Username = strings.TrimSpace(input.Username)

	validator := &validate.Validator{}
	validator.Required("username", input.Username).Required("password", input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// me handles GET /api/v1/auth/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, PrincipalFrom(claims))
}
