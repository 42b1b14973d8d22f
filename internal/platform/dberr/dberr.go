// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/sitenav/internal/platform/apperr"
)

// SQLSTATE codes classified by [Wrap].
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the entity in client-facing messages (e.g. "Site").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations carry a SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			conflict := apperr.Conflict(resource + " already exists")
			conflict.Cause = err
			return conflict
		case codeForeignKeyViolation, codeCheckViolation:
			invalid := apperr.Unprocessable(resource + " violates a data constraint")
			invalid.Cause = err
			return invalid
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
