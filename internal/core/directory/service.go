// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/core/site"
	"github.com/taibuivan/sitenav/internal/platform/retrycache"
	"github.com/taibuivan/sitenav/pkg/pagination"
)

// # Data Sources

// SiteSource is the cached site access the directory views are built from.
type SiteSource interface {
	ListAll(context context.Context, useCache bool) ([]*site.Site, error)
	ListActive(context context.Context, useCache bool) ([]*site.Site, error)
	ListTagSets(context context.Context) ([][]string, error)
}

// CategorySource is the cached category access.
type CategorySource interface {
	List(context context.Context, useCache bool) ([]*category.Category, error)
}

// # Views

// Listing is the filtered public view.
type Listing struct {
	Items   []*site.Site `json:"items"`
	Total   int          `json:"total"`
	Matched int          `json:"matched"`
	Filter  FilterState  `json:"filter"`
}

// AdminSite is a site row of the admin table, with its category resolved.
type AdminSite struct {
	*site.Site
	CategoryName string `json:"category_name"`
}

// AdminListing is one page of the admin table.
type AdminListing struct {
	Items []AdminSite     `json:"items"`
	Stats Stats           `json:"stats"`
	Meta  pagination.Meta `json:"-"`
}

// # Service Layer

// Service builds the directory views on top of the cached sources.
type Service struct {
	sites      SiteSource
	categories CategorySource
	cache      *retrycache.Client
}

// NewService constructs a new [Service].
func NewService(sites SiteSource, categories CategorySource, cache *retrycache.Client) *Service {
	return &Service{sites: sites, categories: categories, cache: cache}
}

// Browse returns the active sites matching state.
func (service *Service) Browse(context context.Context, state FilterState, useCache bool) (*Listing, error) {
	sites, err := service.sites.ListActive(context, useCache)
	if err != nil {
		return nil, err
	}

	items := FilterSites(sites, state)
	return &Listing{Items: items, Total: len(sites), Matched: len(items), Filter: state}, nil
}

// Grouped returns the active sites matching state, grouped by category.
func (service *Service) Grouped(ctx context.Context, state FilterState, useCache bool) ([]Group, error) {
	var (
		sites      []*site.Site
		categories []*category.Category
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		sites, err = service.sites.ListActive(groupCtx, useCache)
		return err
	})
	group.Go(func() (err error) {
		categories, err = service.categories.List(groupCtx, useCache)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return GroupByCategory(FilterSites(sites, state), categories), nil
}

// Tags returns the tag frequencies over every site, active or not. The
// computed counts are cached under [site.CacheKeyTags].
func (service *Service) Tags(ctx context.Context, useCache bool) ([]TagCount, error) {
	return retrycache.Read(ctx, service.cache, site.CacheKeyTags, func(ctx context.Context) ([]TagCount, error) {
		tagSets, err := service.sites.ListTagSets(ctx)
		if err != nil {
			return nil, err
		}
		return CountTags(tagSets), nil
	}, useCache)
}

/*
Admin returns one page of the admin table.

Description: Every site is loaded, filtered with [FilterAdmin] and then paged.
Stats always describe the whole directory, with Filtered set to the number of
matches before paging.
*/
func (service *Service) Admin(ctx context.Context, filter AdminFilter, page pagination.Params, useCache bool) (*AdminListing, error) {
	var (
		sites      []*site.Site
		categories []*category.Category
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		sites, err = service.sites.ListAll(groupCtx, useCache)
		return err
	})
	group.Go(func() (err error) {
		categories, err = service.categories.List(groupCtx, useCache)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	filtered := FilterAdmin(sites, filter)
	names := CategoryNames(categories)

	start := min(max(page.Offset(), 0), len(filtered))
	end := start + min(max(page.Limit, 0), len(filtered)-start)

	items := make([]AdminSite, 0, end-start)
	for _, s := range filtered[start:end] {
		items = append(items, AdminSite{Site: s, CategoryName: CategoryName(names, s.Category)})
	}

	return &AdminListing{
		Items: items,
		Stats: ComputeStats(sites, filtered),
		Meta:  pagination.NewMeta(page.Page, page.Limit, len(filtered)),
	}, nil
}
