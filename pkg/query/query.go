// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import "strings"

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Strings flattens repeated parameters, each of which may itself be a comma
// list, so that "?tag=a,b&tag=c" and "?tag=a&tag=b&tag=c" read the same.
func Strings(vals []string) []string {
	res := make([]string, 0, len(vals))
	for _, v := range vals {
		res = append(res, StringSlice(v)...)
	}
	return res
}
