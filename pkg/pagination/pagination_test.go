// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sitenav/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"?page=3&limit=50", pagination.Params{Page: 3, Limit: 50}},
		{"?page=-1&limit=1000", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"?page=abc", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := pagination.FromRequest(httptest.NewRequest("GET", "/sites"+tt.query, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 3, Limit: 0}.Offset())
}

func TestParams_OffsetSaturates(t *testing.T) {
	offset := pagination.Params{Page: 461168601842738792, Limit: 20}.Offset()
	assert.Equal(t, math.MaxInt, offset)
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 20, Total: 41, TotalPages: 3}, pagination.NewMeta(1, 20, 41))
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 5).TotalPages)
	assert.Equal(t, 1, pagination.NewMeta(1, math.MaxInt, 5).TotalPages)
}
