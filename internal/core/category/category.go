// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category manages the grouping buckets of the site directory.

# Core Responsibility

  - Taxonomy: Defines the [Category] entity and its display order.
  - Sentinel: Reserves [AllID] as the synthetic "no filter" category, which is
    never persisted and is injected by consumers only.

Categories are read far more often than written, so reads go through the
cached retry client under the "categories" key.
*/
package category

// AllID is the reserved identifier meaning "no category filter".
const AllID = "all"

// CacheKey is the logical cache slot holding the category list.
const CacheKey = "categories"

// # Core Entities

// Category is a named grouping bucket for sites.
type Category struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Icon      *string `json:"icon"`
	SortOrder int     `json:"sort_order"`
}

// IsSentinel reports whether the category is the synthetic "all" entry.
func (c *Category) IsSentinel() bool {
	return c.ID == AllID
}

// Sentinel returns the synthetic "all" category for consumers that display it.
func Sentinel(name string) *Category {
	return &Category{ID: AllID, Name: name, SortOrder: -1}
}

// # Field Identifiers

const (
	FieldID        = "id"
	FieldName      = "name"
	FieldIcon      = "icon"
	FieldSortOrder = "sort_order"
)
