// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import "context"

// # Repository Contract

// Repository is the persistence boundary for sites.
type Repository interface {
	// ListAll returns every site, newest first.
	ListAll(context context.Context) ([]*Site, error)

	// ListActive returns the active sites by sort order, unordered sites last,
	// then newest first.
	ListActive(context context.Context) ([]*Site, error)

	// FindByID returns a single site or NOT_FOUND.
	FindByID(context context.Context, id string) (*Site, error)

	// Create inserts site and returns the stored row.
	Create(context context.Context, site *Site) (*Site, error)

	// Update replaces the editable fields of the site with id. A nil IsActive
	// keeps the stored flag.
	Update(context context.Context, id string, input Input) (*Site, error)

	// Delete removes the site with id or returns NOT_FOUND.
	Delete(context context.Context, id string) error

	// SetActive flips the visibility of the site with id.
	SetActive(context context.Context, id string, active bool) (*Site, error)

	// ListTagSets returns the tag list of every site, active or not.
	ListTagSets(context context.Context) ([][]string, error)
}
