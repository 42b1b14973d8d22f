// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/sitenav/internal/platform/retrycache"
	"github.com/taibuivan/sitenav/internal/platform/validate"
	"github.com/taibuivan/sitenav/pkg/pointer"
	"github.com/taibuivan/sitenav/pkg/slug"
)

const maxNameLength = 100

// # Service Layer

// Service orchestrates category reads and admin mutations.
//
// Every call to the repository goes through the cached retry client: reads are
// cached under [CacheKey], writes clear the whole cache when they succeed.
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

// List returns the persisted categories in sort order. The "all" sentinel is
// never part of the result.
func (service *Service) List(context context.Context, useCache bool) ([]*Category, error) {
	return retrycache.Read(context, service.cache, CacheKey, service.repo.List, useCache)
}

/*
Create validates input and persists a new category.

Description: When no id is given it is derived from the name as a URL slug.
The reserved "all" id is rejected.

Returns:
  - *Category: The stored category
  - error: VALIDATION_ERROR, CONFLICT on a duplicate id, or the storage failure
*/
func (service *Service) Create(ctx context.Context, input Input) (*Category, error) {
	name := strings.TrimSpace(input.Name)
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = slug.From(name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	validator.Required(FieldID, id).Slug(FieldID, id)
	validator.Custom(FieldID, id == AllID, "This id is reserved")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category := &Category{ID: id, Name: name, Icon: trimOptional(input.Icon), SortOrder: pointer.Val(input.SortOrder)}

	created, err := retrycache.Write(ctx, service.cache, func(ctx context.Context) (*Category, error) {
		return service.repo.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("category_id", created.ID))
	return created, nil
}

// Update patches the category with id. Only non-empty fields change.
func (service *Service) Update(ctx context.Context, id string, input Input) (*Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Icon = trimOptional(input.Icon)

	validator := &validate.Validator{}
	validator.Custom(FieldID, id == AllID, "This id is reserved")
	validator.MaxLen(FieldName, input.Name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	updated, err := retrycache.Write(ctx, service.cache, func(ctx context.Context) (*Category, error) {
		return service.repo.Update(ctx, id, input)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("category_updated", slog.String("category_id", updated.ID))
	return updated, nil
}

// trimOptional trims value and maps blank strings to nil.
func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return pointer.To(trimmed)
}
