// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/sitenav/internal/platform/apperr"
	"github.com/taibuivan/sitenav/internal/platform/constants"
	"github.com/taibuivan/sitenav/internal/platform/ctxutil"
	"github.com/taibuivan/sitenav/internal/platform/respond"
	"github.com/taibuivan/sitenav/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// It is satisfied by [*sec.TokenService] and by fakes in handler tests.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// 1. Anonymous Access
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Format Validation
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, constants.AuthSchemeBearer) || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// 3. Token Verification
			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			if recorder, ok := writer.(identified); ok {
				recorder.setUsername(claims.Username)
			}

			// 4. Context Injection
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests if the authenticated caller doesn't have the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. Anonymous requests
// get 401, authenticated ones with a weaker role get 403.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// 1. Authentication Check
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// 2. Authorization Check
			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
