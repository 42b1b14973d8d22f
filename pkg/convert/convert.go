// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning a default instead of an error when parsing fails). This is
useful when reading optional query parameters and CLI flags.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}
	return def
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}
