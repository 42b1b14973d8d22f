// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sitenav/internal/api"
	"github.com/taibuivan/sitenav/internal/auth"
	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/core/directory"
	"github.com/taibuivan/sitenav/internal/core/site"
	"github.com/taibuivan/sitenav/internal/platform/config"
	"github.com/taibuivan/sitenav/internal/platform/constants"
	"github.com/taibuivan/sitenav/internal/platform/middleware"
	"github.com/taibuivan/sitenav/internal/platform/retrycache"
	"github.com/taibuivan/sitenav/internal/platform/sec"
)

type emptyCategories struct{}

func (emptyCategories) List(context.Context) ([]*category.Category, error) {
	return []*category.Category{}, nil
}

func (emptyCategories) Create(context.Context, *category.Category) (*category.Category, error) {
	return nil, errors.New("read only")
}

func (emptyCategories) Update(context.Context, string, category.Input) (*category.Category, error) {
	return nil, errors.New("read only")
}

type fixture struct {
	server *api.Server
	tokens *sec.TokenService
	cache  *retrycache.Client
}

func newFixture(t *testing.T, withAdmin bool) fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cache := retrycache.New(retrycache.NewMemoryStore(), retrycache.DefaultConfig(), logger)
	categories := category.NewService(emptyCategories{}, cache, logger)
	sites := site.NewService(nil, cache, logger)

	handlers := api.Handlers{
		Liveness:  func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
		Readiness: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
		Category:  category.NewHandler(categories),
		Site:      site.NewHandler(sites),
		Directory: directory.NewHandler(directory.NewService(sites, categories, cache)),
		Cache:     cache,
	}

	var (
		verifier middleware.TokenVerifier
		tokens   *sec.TokenService
	)
	if withAdmin {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		tokens = sec.NewTokenServiceFromKeys(key, &key.PublicKey, constants.AuthIssuer)
		verifier = tokens

		hash, err := sec.HashPassword("secret")
		require.NoError(t, err)
		handlers.Auth = auth.NewHandler(auth.NewService(auth.Credentials{Username: "admin", PasswordHash: hash}, tokens, time.Hour, logger))
	}

	cfg := &config.Config{ServerPort: "0", Environment: "development"}
	return fixture{server: api.NewServer(ctx, cfg, logger, verifier, handlers), tokens: tokens, cache: cache}
}

func (f fixture) do(t *testing.T, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, target, nil)
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(recorder, request)
	return recorder
}

func TestServer_PublicRoutes(t *testing.T) {
	f := newFixture(t, false)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/categories", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/sites/not-a-uuid/icons", "").Code)
}

func TestServer_ReadOnlyWithoutAdmin(t *testing.T) {
	f := newFixture(t, false)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/admin/cache", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/api/v1/auth/login", "").Code)
}

/*
TestServer_AdminCache checks the role guard and the cache endpoints.
*/
func TestServer_AdminCache(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/admin/cache", "").Code)

	viewer, err := f.tokens.GenerateAccessToken("visitor", "visitor", sec.RoleViewer, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/v1/admin/cache", viewer).Code)

	admin, err := f.tokens.GenerateAccessToken(constants.AdminSubject, "admin", sec.RoleAdmin, time.Hour)
	require.NoError(t, err)

	recorder := f.do(t, http.MethodGet, "/api/v1/admin/cache", admin)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data api.CacheInfo `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.Equal(t, retrycache.DefaultMaxRetries, envelope.Data.MaxRetries)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/v1/admin/cache", admin).Code)
	assert.Equal(t, int64(1), f.cache.Stats().Invalidations)
}
