// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for sites.

It wraps the google/uuid library to generate Version 7 values, which sort by
creation time and keep the core.site primary key index compact.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// entropy failure is an unrecoverable system-level error
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
