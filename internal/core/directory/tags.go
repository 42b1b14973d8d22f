// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"cmp"
	"slices"

	"github.com/taibuivan/sitenav/internal/core/site"
)

// TagCount is the number of sites carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ComputeTagFrequencies counts tags across sites.
//
// See [CountTags] for ordering.
func ComputeTagFrequencies(sites []*site.Site) []TagCount {
	tagSets := make([][]string, 0, len(sites))
	for _, s := range sites {
		if s != nil {
			tagSets = append(tagSets, s.Tags)
		}
	}
	return CountTags(tagSets)
}

// CountTags counts every tag occurrence across tagSets.
//
// The result is ordered by count, highest first; ties keep the order in which
// the tags were first seen. Empty tags are ignored.
func CountTags(tagSets [][]string) []TagCount {
	index := make(map[string]int)
	counts := make([]TagCount, 0)

	for _, tags := range tagSets {
		for _, tag := range tags {
			if tag == "" {
				continue
			}

			if position, ok := index[tag]; ok {
				counts[position].Count++
				continue
			}

			index[tag] = len(counts)
			counts = append(counts, TagCount{Tag: tag, Count: 1})
		}
	}

	slices.SortStableFunc(counts, func(a, b TagCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return counts
}
