// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/platform/apperr"
	"github.com/taibuivan/sitenav/internal/platform/retrycache"
	"github.com/taibuivan/sitenav/internal/platform/validate"
	"github.com/taibuivan/sitenav/pkg/favicon"
	"github.com/taibuivan/sitenav/pkg/pointer"
	"github.com/taibuivan/sitenav/pkg/slice"
	"github.com/taibuivan/sitenav/pkg/uuid"
)

const (
	maxTitleLength    = 200
	maxSubtitleLength = 500
	maxTags           = 20
)

// # Service Layer

// Service orchestrates site reads and admin mutations through the cached
// retry client.
type Service struct {
	repo   Repository
	cache  *retrycache.Client
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, cache *retrycache.Client, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListAll returns every site, newest first.
func (service *Service) ListAll(context context.Context, useCache bool) ([]*Site, error) {
	return retrycache.Read(context, service.cache, CacheKeyAll, service.repo.ListAll, useCache)
}

// ListActive returns the publicly visible sites in display order.
func (service *Service) ListActive(context context.Context, useCache bool) ([]*Site, error) {
	return retrycache.Read(context, service.cache, CacheKeyActive, service.repo.ListActive, useCache)
}

// ListTagSets returns the tag list of every site. It is the uncached source
// for the tag frequency view, which caches the computed counts instead.
func (service *Service) ListTagSets(context context.Context) ([][]string, error) {
	return service.repo.ListTagSets(context)
}

// Find returns a single site. Unknown and malformed ids are NOT_FOUND.
func (service *Service) Find(ctx context.Context, id string, useCache bool) (*Site, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceName)
	}

	return retrycache.Read(ctx, service.cache, CacheKeyPrefixSite+id, func(ctx context.Context) (*Site, error) {
		return service.repo.FindByID(ctx, id)
	}, useCache)
}

// Icons lists the favicon candidates of the site with id, best first.
func (service *Service) Icons(context context.Context, id string) (*Icons, error) {
	site, err := service.Find(context, id, true)
	if err != nil {
		return nil, err
	}

	return &Icons{
		Candidates:  favicon.Candidates(site.Image, site.URL),
		Placeholder: favicon.Placeholder(site.Title),
	}, nil
}

/*
Create validates input and persists a new site.

Description: Text fields are trimmed, tags are trimmed and de-duplicated, and
a blank image is stored as NULL. New sites are active unless input says
otherwise.

Returns:
  - *Site: The stored site
  - error: VALIDATION_ERROR before any storage call, or the storage failure
*/
func (service *Service) Create(ctx context.Context, input Input) (*Site, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	site := &Site{
		ID:        uuid.New(),
		Title:     input.Title,
		Subtitle:  input.Subtitle,
		URL:       input.URL,
		Image:     input.Image,
		Category:  input.Category,
		Tags:      input.Tags,
		SortOrder: input.SortOrder,
	}
	site.IsActive = pointer.Fallback(input.IsActive, true)

	created, err := retrycache.Write(ctx, service.cache, func(ctx context.Context) (*Site, error) {
		return service.repo.Create(ctx, site)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("site_created", slog.String("site_id", created.ID), slog.String("category", created.Category))
	return created, nil
}

// Update replaces the editable fields of the site with id. Validation is the
// same as [Service.Create].
func (service *Service) Update(ctx context.Context, id string, input Input) (*Site, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceName)
	}

	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	updated, err := retrycache.Write(ctx, service.cache, func(ctx context.Context) (*Site, error) {
		return service.repo.Update(ctx, id, input)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("site_updated", slog.String("site_id", updated.ID))
	return updated, nil
}

// SetActive shows or hides the site with id on the public directory.
func (service *Service) SetActive(ctx context.Context, id string, active bool) (*Site, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceName)
	}

	updated, err := retrycache.Write(ctx, service.cache, func(ctx context.Context) (*Site, error) {
		return service.repo.SetActive(ctx, id, active)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("site_visibility_changed", slog.String("site_id", updated.ID), slog.Bool("active", active))
	return updated, nil
}

// Delete removes the site with id.
func (service *Service) Delete(ctx context.Context, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceName)
	}

	_, err := retrycache.Write(ctx, service.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, service.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	service.logger.Info("site_deleted", slog.String("site_id", id))
	return nil
}

// # Input Handling

func normalize(input Input) Input {
	input.Title = strings.TrimSpace(input.Title)
	input.Subtitle = strings.TrimSpace(input.Subtitle)
	input.URL = strings.TrimSpace(input.URL)
	input.Category = strings.TrimSpace(input.Category)

	if input.Image != nil {
		image := strings.TrimSpace(*input.Image)
		if image == "" {
			input.Image = nil
		} else {
			input.Image = pointer.To(image)
		}
	}

	tags := slice.Map(input.Tags, strings.TrimSpace)
	tags = slice.Filter(tags, func(tag string) bool { return tag != "" })
	input.Tags = slice.Unique(tags)

	return input
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, maxTitleLength)
	validator.MaxLen(FieldSubtitle, input.Subtitle, maxSubtitleLength)
	validator.Required(FieldURL, input.URL).HTTPURL(FieldURL, input.URL)
	if input.Image != nil && !strings.HasPrefix(*input.Image, "data:") {
		validator.HTTPURL(FieldImage, *input.Image)
	}
	validator.Required(FieldCategory, input.Category)
	validator.Custom(FieldCategory, input.Category == category.AllID, "Choose a concrete category")
	validator.Custom(FieldTags, len(input.Tags) > maxTags, "Too many tags")
	return validator.Err()
}
