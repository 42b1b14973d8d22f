// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Roles

// UserRole represents the authorization level carried by an access token.
type UserRole string

const (
	// RoleAdmin may manage sites, categories and the cache.
	RoleAdmin UserRole = "admin"

	// RoleViewer is the implicit role of anonymous directory visitors.
	RoleViewer UserRole = "viewer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleViewer:
		return 10
	default:
		return 0
	}
}
