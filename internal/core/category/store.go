// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// # Repository Contract

// Repository is the persistence boundary for categories.
type Repository interface {
	// List returns every persisted category ordered by sort order.
	List(context context.Context) ([]*Category, error)

	// Create inserts category and returns the stored row.
	Create(context context.Context, category *Category) (*Category, error)

	// Update applies the non-empty fields of input to the category with id.
	Update(context context.Context, id string, input Input) (*Category, error)
}

// Input carries the admin-editable fields of a [Category].
//
// On update, empty Name and nil Icon or SortOrder leave the stored value alone.
type Input struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Icon      *string `json:"icon"`
	SortOrder *int    `json:"sort_order"`
}
