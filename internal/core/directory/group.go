// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"cmp"
	"slices"

	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/core/site"
)

// Group is one category section of the grouped view.
type Group struct {
	Category *category.Category `json:"category"`
	Sites    []*site.Site       `json:"sites"`
}

// GroupByCategory partitions sites by category, ordered by category sort order.
//
// The sentinel category is never a group, categories without matching sites
// are omitted, and sites keep their input order inside a group. Categories
// with equal sort order keep their relative order in categories. A repeated
// category ID only forms one group.
func GroupByCategory(sites []*site.Site, categories []*category.Category) []Group {
	ordered := make([]*category.Category, 0, len(categories))
	for _, c := range categories {
		if c != nil && !c.IsSentinel() {
			ordered = append(ordered, c)
		}
	}

	slices.SortStableFunc(ordered, func(a, b *category.Category) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})

	buckets := make(map[string][]*site.Site, len(ordered))
	for _, s := range sites {
		if s == nil {
			continue
		}
		buckets[s.Category] = append(buckets[s.Category], s)
	}

	groups := make([]Group, 0, len(ordered))
	seen := make(map[string]bool, len(ordered))
	for _, c := range ordered {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		if members := buckets[c.ID]; len(members) > 0 {
			groups = append(groups, Group{Category: c, Sites: members})
		}
	}

	return groups
}
