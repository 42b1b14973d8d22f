// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sitenav/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, apperr.NotFound("Site").HTTPStatus)
	assert.Equal(t, "Site not found", apperr.NotFound("Site").Error())
	assert.Equal(t, http.StatusConflict, apperr.Conflict("dup").HTTPStatus)
	assert.Equal(t, http.StatusTooManyRequests, apperr.RateLimited(5).HTTPStatus)

	validation := apperr.ValidationError("Validation failed", apperr.FieldError{Field: "url", Message: "bad"})
	assert.Equal(t, "VALIDATION_ERROR", validation.Code)
	assert.Len(t, validation.Details, 1)
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("site service: %w", apperr.NotFound("Site"))

	assert.True(t, apperr.IsAppError(wrapped))
	assert.Equal(t, "NOT_FOUND", apperr.As(wrapped).Code)
	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestRetryable verifies that only server-side or unknown failures are retried.
*/
func TestRetryable(t *testing.T) {
	assert.True(t, apperr.Retryable(errors.New("timeout")))
	assert.True(t, apperr.Retryable(apperr.Internal(errors.New("x"))))
	assert.True(t, apperr.Retryable(apperr.ServiceUnavailable("db down")))
	assert.False(t, apperr.Retryable(apperr.NotFound("Site")))
	assert.False(t, apperr.Retryable(apperr.ValidationError("bad")))
	assert.False(t, apperr.Retryable(fmt.Errorf("wrap: %w", apperr.Conflict("dup"))))
}
