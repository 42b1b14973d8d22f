// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/core/directory"
	"github.com/taibuivan/sitenav/internal/core/site"
	"github.com/taibuivan/sitenav/internal/platform/retrycache"
	"github.com/taibuivan/sitenav/pkg/pagination"
)

// fakeSites serves the fixture set; only active sites from ListActive.
type fakeSites struct {
	err         error
	tagSetCalls atomic.Int32
}

func (source *fakeSites) ListAll(context.Context, bool) ([]*site.Site, error) {
	return fixtureSites(), source.err
}

func (source *fakeSites) ListActive(context.Context, bool) ([]*site.Site, error) {
	if source.err != nil {
		return nil, source.err
	}
	return directory.FilterAdmin(fixtureSites(), directory.AdminFilter{Status: directory.StatusActive}), nil
}

func (source *fakeSites) ListTagSets(context.Context) ([][]string, error) {
	source.tagSetCalls.Add(1)
	tagSets := make([][]string, 0)
	for _, s := range fixtureSites() {
		tagSets = append(tagSets, s.Tags)
	}
	return tagSets, source.err
}

type fakeCategories struct{}

func (fakeCategories) List(context.Context, bool) ([]*category.Category, error) {
	return []*category.Category{
		{ID: "design", Name: "Design", SortOrder: 0},
		{ID: "dev", Name: "Development", SortOrder: 1},
	}, nil
}

func newDirectoryService(sites *fakeSites) *directory.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := retrycache.New(retrycache.NewMemoryStore(), retrycache.DefaultConfig(), logger,
		retrycache.WithSleep(func(context.Context, time.Duration) error { return nil }))
	return directory.NewService(sites, fakeCategories{}, cache)
}

func TestService_Browse(t *testing.T) {
	service := newDirectoryService(&fakeSites{})

	listing, err := service.Browse(context.Background(), directory.FilterState{CategoryID: "dev"}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, ids(listing.Items))
	assert.Equal(t, 4, listing.Total)
	assert.Equal(t, 1, listing.Matched)
}

func TestService_Browse_PropagatesFailure(t *testing.T) {
	service := newDirectoryService(&fakeSites{err: errors.New("offline")})

	_, err := service.Browse(context.Background(), directory.DefaultFilterState(), true)
	assert.EqualError(t, err, "offline")
}

func TestService_Grouped(t *testing.T) {
	service := newDirectoryService(&fakeSites{})

	groups, err := service.Grouped(context.Background(), directory.DefaultFilterState(), true)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "design", groups[0].Category.ID)
	assert.Equal(t, []string{"2", "5"}, ids(groups[0].Sites))
	assert.Equal(t, []string{"1"}, ids(groups[1].Sites))
}

/*
TestService_Tags_CountsEverySiteAndCaches checks that inactive sites count
and that the computed result is cached.
*/
func TestService_Tags_CountsEverySiteAndCaches(t *testing.T) {
	sites := &fakeSites{}
	service := newDirectoryService(sites)
	ctx := context.Background()

	counts, err := service.Tags(ctx, true)
	require.NoError(t, err)
	assert.Contains(t, counts, directory.TagCount{Tag: "backend", Count: 1})

	_, err = service.Tags(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int32(1), sites.tagSetCalls.Load())
}

func TestService_Admin(t *testing.T) {
	service := newDirectoryService(&fakeSites{})

	listing, err := service.Admin(context.Background(),
		directory.AdminFilter{Status: directory.StatusAll},
		pagination.Params{Page: 2, Limit: 2}, true)
	require.NoError(t, err)

	require.Len(t, listing.Items, 2)
	assert.Equal(t, "3", listing.Items[0].ID)
	assert.Equal(t, "Development", listing.Items[0].CategoryName)
	assert.Equal(t, "gone", listing.Items[1].CategoryName)
	assert.Equal(t, directory.Stats{Total: 5, Active: 4, Inactive: 1, Filtered: 5}, listing.Stats)
	assert.Equal(t, 3, listing.Meta.TotalPages)

	listing, err = service.Admin(context.Background(), directory.AdminFilter{}, pagination.Params{Page: 9, Limit: 2}, true)
	require.NoError(t, err)
	assert.Empty(t, listing.Items)
}

func TestService_Admin_PageBeyondRange(t *testing.T) {
	service := newDirectoryService(&fakeSites{})

	for _, page := range []pagination.Params{
		{Page: 461168601842738792, Limit: 20},
		{Page: math.MaxInt, Limit: math.MaxInt},
		{Page: 1, Limit: math.MaxInt},
	} {
		listing, err := service.Admin(context.Background(),
			directory.AdminFilter{Status: directory.StatusAll, CategoryID: category.AllID}, page, true)
		require.NoError(t, err)
		assert.Equal(t, 5, listing.Stats.Filtered)
		if page.Page > 1 {
			assert.Empty(t, listing.Items)
		} else {
			assert.Len(t, listing.Items, 5)
		}
	}
}

func TestHandler_Browse(t *testing.T) {
	router := chi.NewRouter()
	directory.NewHandler(newDirectoryService(&fakeSites{})).RegisterRoutes(router)

	request := httptest.NewRequest(http.MethodGet, "/sites?tags=ui&tags=inspiration", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data directory.Listing `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.Equal(t, []string{"2", "5"}, ids(envelope.Data.Items))
	assert.Equal(t, category.AllID, envelope.Data.Filter.CategoryID)
}

func TestFilterStateFromRequest(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/sites?category=dev&q=%20go%20&tags=a,b&tags=c", nil)

	state := directory.FilterStateFromRequest(request)

	assert.Equal(t, "dev", state.CategoryID)
	assert.Equal(t, " go ", state.Query)
	assert.Equal(t, []string{"a", "b", "c"}, state.Tags)
}
