// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer helps with the optional fields of admin payloads, where nil
means "not provided".

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Dereferences a pointer, returning the zero value if nil.
  - Fallback: Dereferences a pointer, returning a fallback value if nil.
*/
package pointer

// To returns a pointer to the provided value (e.g. pointer.To("palette")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
