// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"strings"

	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/core/site"
)

// # Admin View

// Status selects sites by their active flag in the admin listing.
type Status string

const (
	StatusAll      Status = "all"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// AdminFilter is the admin panel selection. It is narrower than [FilterState]:
// the query only looks at title and URL, and inactive sites are included.
type AdminFilter struct {
	Query      string `json:"q"`
	CategoryID string `json:"category"`
	Status     Status `json:"status"`
}

// FilterAdmin returns the sites matching filter, in input order.
//
// An unknown status behaves like [StatusAll].
func FilterAdmin(sites []*site.Site, filter AdminFilter) []*site.Site {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	filterByCategory := filter.CategoryID != "" && filter.CategoryID != category.AllID

	result := make([]*site.Site, 0, len(sites))
	for _, s := range sites {
		if s == nil {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(s.Title), query) &&
			!strings.Contains(strings.ToLower(s.URL), query) {
			continue
		}

		if filterByCategory && s.Category != filter.CategoryID {
			continue
		}

		if (filter.Status == StatusActive && !s.IsActive) || (filter.Status == StatusInactive && s.IsActive) {
			continue
		}

		result = append(result, s)
	}

	return result
}

// Stats summarises the admin listing.
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Filtered int `json:"filtered"`
}

// ComputeStats counts all sites by status and records the filtered size.
func ComputeStats(all, filtered []*site.Site) Stats {
	stats := Stats{Filtered: len(filtered)}
	for _, s := range all {
		if s == nil {
			continue
		}
		stats.Total++
		if s.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}
	return stats
}

// CategoryNames maps category IDs to display names.
func CategoryNames(categories []*category.Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		if c != nil {
			names[c.ID] = c.Name
		}
	}
	return names
}

// CategoryName resolves id through names, falling back to the id itself.
func CategoryName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}
