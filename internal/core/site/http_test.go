// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sitenav/internal/core/site"
)

func newRouter(repository site.Repository) http.Handler {
	handler := site.NewHandler(newService(repository))
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	router.Route("/admin", handler.RegisterAdminRoutes)
	return router
}

func serve(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_CreateSite(t *testing.T) {
	repository := &fakeRepository{}
	router := newRouter(repository)

	recorder := serve(t, router, http.MethodPost, "/admin/sites",
		`{"title":"Go","url":"https://go.dev","category":"dev","tags":["backend"]}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Data site.Site `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.Equal(t, "Go", envelope.Data.Title)
	assert.True(t, envelope.Data.IsActive)
	assert.Len(t, repository.sites, 1)
}

func TestHandler_CreateSite_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"unknown_field", `{"title":"Go","rank":1}`, "VALIDATION_ERROR"},
		{"malformed", `{"title":`, "VALIDATION_ERROR"},
		{"invalid", `{"title":"Go","url":"go.dev","category":"dev"}`, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(t, newRouter(&fakeRepository{}), http.MethodPost, "/admin/sites", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.code)
		})
	}
}

func TestHandler_SetActive(t *testing.T) {
	repository := &fakeRepository{sites: []*site.Site{{ID: siteID, Title: "Go", IsActive: true}}}
	router := newRouter(repository)

	recorder := serve(t, router, http.MethodPatch, "/admin/sites/"+siteID+"/active", `{"is_active":false}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.False(t, repository.sites[0].IsActive)

	recorder = serve(t, router, http.MethodPatch, "/admin/sites/"+siteID+"/active", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_DeleteSite(t *testing.T) {
	repository := &fakeRepository{sites: []*site.Site{{ID: siteID, Title: "Go"}}}
	router := newRouter(repository)

	recorder := serve(t, router, http.MethodDelete, "/admin/sites/"+siteID, "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, repository.sites)

	recorder = serve(t, router, http.MethodDelete, "/admin/sites/"+siteID, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_GetIcons(t *testing.T) {
	repository := &fakeRepository{sites: []*site.Site{{ID: siteID, Title: "Go", URL: "https://go.dev"}}}

	recorder := serve(t, newRouter(repository), http.MethodGet, "/sites/"+siteID+"/icons", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data site.Icons `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.Len(t, envelope.Data.Candidates, 5)
	assert.NotEmpty(t, envelope.Data.Placeholder)
}
