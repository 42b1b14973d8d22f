// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (Success or Error) across the entire application
// follows a strict, predictable JSON envelope structure. This consistency is
// what lets the directory front end and the CLI parse data robustly.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/sitenav/internal/platform/apperr"
	"github.com/taibuivan/sitenav/internal/platform/constants"
	"github.com/taibuivan/sitenav/internal/platform/ctxutil"
	"github.com/taibuivan/sitenav/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for successful single-resource responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope is the JSON envelope for paginated list responses.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes a 200 OK response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
