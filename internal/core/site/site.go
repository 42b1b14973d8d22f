// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package site manages the directory listings: bookmarked external websites.

# Core Responsibility

  - Listing: Defines the [Site] entity (title, URL, category, tags, active flag).
  - Access: Serves all/active listings through the cached retry client, and
    routes every mutation through it so that a successful write invalidates
    the cache.
  - Administration: Validation and normalisation of admin input.

The public surface filters and groups sites with the directory filter engine.
*/
package site

import "time"

// # Core Entities

// Site is a single directory listing.
type Site struct {
	ID        string    `json:"id"` // UUIDv7
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	URL       string    `json:"url"`
	Image     *string   `json:"image"` // nil: derive a favicon from URL
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	IsActive  bool      `json:"is_active"`
	SortOrder *int      `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Input carries the admin-editable fields of a [Site].
type Input struct {
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	URL       string   `json:"url"`
	Image     *string  `json:"image"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	IsActive  *bool    `json:"is_active"`
	SortOrder *int     `json:"sort_order"`
}

// Icons is the ordered favicon fallback chain of a site.
type Icons struct {
	Candidates  []string `json:"candidates"`
	Placeholder string   `json:"placeholder"`
}

// # Cache Keys

// Logical cache slots for site reads. Single sites are cached under
// CacheKeyPrefixSite followed by the id.
const (
	CacheKeyAll        = "sites_all"
	CacheKeyActive     = "sites_active"
	CacheKeyTags       = "tags"
	CacheKeyPrefixSite = "site:"
)

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldSubtitle = "subtitle"
	FieldURL      = "url"
	FieldImage    = "image"
	FieldCategory = "category"
	FieldTags     = "tags"
	FieldIsActive = "is_active"
)
