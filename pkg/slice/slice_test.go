// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sitenav/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[string, string](nil, strings.ToUpper))
	assert.Equal(t, []string{"A", "B"}, slice.Map([]string{"a", "b"}, strings.ToUpper))
}

func TestFilter(t *testing.T) {
	notEmpty := func(s string) bool { return s != "" }
	assert.Equal(t, []string{"a", "b"}, slice.Filter([]string{"a", "", "b"}, notEmpty))
	assert.Nil(t, slice.Filter(nil, notEmpty))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"go", "web", "Go"}, slice.Unique([]string{"go", "web", "go", "Go", "web"}))
	assert.Equal(t, []string{}, slice.Unique[string](nil))
}
