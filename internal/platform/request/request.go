// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sitenav/internal/platform/apperr"
	"github.com/taibuivan/sitenav/internal/platform/ctxutil"
	"github.com/taibuivan/sitenav/internal/platform/sec"
	"github.com/taibuivan/sitenav/internal/platform/validate"
	"github.com/taibuivan/sitenav/pkg/convert"
)

// maxBodyBytes caps JSON request bodies. Site and category payloads are tiny.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields are rejected so typos in admin payloads surface as errors.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Bool reads a boolean query parameter ("true", "1"), false when absent.
func Bool(request *http.Request, name string) bool {
	return convert.ToBool(request.URL.Query().Get(name))
}

/*
RequiredClaims ensures the request is authenticated and returns the admin claims.

Returns:
  - *sec.AuthClaims: The verified token claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}
