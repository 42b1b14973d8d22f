// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package directory is the filter engine of the site directory.

It computes the visible subset of sites for a [FilterState], the
category-grouped view of that subset, and tag frequencies.

Architecture:

  - Pure: The engine functions do no I/O, read no clock and never mutate
    their inputs. [Service] is the only part that loads data.
  - Total: Never fails. Nil sites are skipped, missing tags count as none,
    and sites pointing at unknown categories simply match no group.
  - Stable: Results keep the relative order of the input.
*/
package directory

import (
	"strings"

	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/core/site"
)

// # Filter State

// FilterState is the ephemeral selection driving the visible subset.
type FilterState struct {
	// CategoryID selects a single category. Empty or [category.AllID] means all.
	CategoryID string `json:"category"`

	// Query is matched as a case-insensitive substring against title,
	// subtitle, URL and tags.
	Query string `json:"q"`

	// Tags keeps sites carrying at least one tag that contains any of these.
	Tags []string `json:"tags"`
}

// DefaultFilterState is the state at session start: everything visible.
func DefaultFilterState() FilterState {
	return FilterState{CategoryID: category.AllID, Tags: []string{}}
}

// IsEmpty reports whether no stage of the filter is active.
func (state FilterState) IsEmpty() bool {
	return !state.categoryActive() && strings.TrimSpace(state.Query) == "" && len(state.Tags) == 0
}

func (state FilterState) categoryActive() bool {
	return state.CategoryID != "" && state.CategoryID != category.AllID
}

// matcher holds the lower-cased filter inputs, computed once per call.
type matcher struct {
	categoryID string
	query      string
	tags       []string
}

func newMatcher(state FilterState) matcher {
	m := matcher{query: strings.ToLower(strings.TrimSpace(state.Query))}

	if state.categoryActive() {
		m.categoryID = state.CategoryID
	}

	if len(state.Tags) > 0 {
		m.tags = make([]string, len(state.Tags))
		for i, tag := range state.Tags {
			m.tags[i] = strings.ToLower(tag)
		}
	}

	return m
}

func (m matcher) matches(s *site.Site) bool {
	// Category stage: exact, case-sensitive.
	if m.categoryID != "" && s.Category != m.categoryID {
		return false
	}

	// Text stage: any field contains the query.
	if m.query != "" && !matchesText(s, m.query) {
		return false
	}

	// Tag stage: any selected tag within any site tag.
	if len(m.tags) > 0 && !matchesAnyTag(s.Tags, m.tags) {
		return false
	}

	return true
}

func matchesText(s *site.Site, query string) bool {
	if strings.Contains(strings.ToLower(s.Title), query) ||
		strings.Contains(strings.ToLower(s.Subtitle), query) ||
		strings.Contains(strings.ToLower(s.URL), query) {
		return true
	}

	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}

	return false
}

func matchesAnyTag(siteTags, selected []string) bool {
	for _, siteTag := range siteTags {
		lowered := strings.ToLower(siteTag)
		for _, tag := range selected {
			if strings.Contains(lowered, tag) {
				return true
			}
		}
	}
	return false
}

// # Operations

// FilterSites returns the sites visible under state, in input order.
//
// The stages are conjunctive: category, then free text, then tags. An inactive
// stage keeps everything. The result is a new slice; the input is untouched.
func FilterSites(sites []*site.Site, state FilterState) []*site.Site {
	m := newMatcher(state)

	result := make([]*site.Site, 0, len(sites))
	for _, s := range sites {
		if s != nil && m.matches(s) {
			result = append(result, s)
		}
	}

	return result
}
