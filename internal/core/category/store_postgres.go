// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/sitenav/internal/platform/database/schema"
	"github.com/taibuivan/sitenav/internal/platform/dberr"
	"github.com/taibuivan/sitenav/internal/platform/postgres"
)

const resourceName = "Category"

// PostgresRepository implements [Repository] on core.category.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository constructs a PostgreSQL backed category store.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	columns = schema.List(schema.CoreCategory.Columns())

	listQuery = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		columns, schema.CoreCategory.Table, schema.CoreCategory.SortOrder, schema.CoreCategory.ID)

	insertQuery = fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		schema.CoreCategory.Table, columns, columns)

	updateQuery = fmt.Sprintf(`UPDATE %s SET
			%s = COALESCE(NULLIF($2, ''), %s),
			%s = COALESCE($3, %s),
			%s = COALESCE($4, %s),
			%s = now()
		WHERE %s = $1
		RETURNING %s`,
		schema.CoreCategory.Table,
		schema.CoreCategory.Name, schema.CoreCategory.Name,
		schema.CoreCategory.Icon, schema.CoreCategory.Icon,
		schema.CoreCategory.SortOrder, schema.CoreCategory.SortOrder,
		schema.CoreCategory.UpdatedAt,
		schema.CoreCategory.ID,
		columns)
)

func scanCategory(row pgx.Row) (*Category, error) {
	category := &Category{}
	if err := row.Scan(&category.ID, &category.Name, &category.Icon, &category.SortOrder); err != nil {
		return nil, err
	}
	return category, nil
}

// List returns all categories ordered by sort order, then id.
func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	rows, err := repository.db.Query(context, listQuery)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	return categories, nil
}

// Create inserts a category. A duplicate id surfaces as a conflict.
func (repository *PostgresRepository) Create(context context.Context, category *Category) (*Category, error) {
	row := repository.db.QueryRow(context, insertQuery, category.ID, category.Name, category.Icon, category.SortOrder)

	created, err := scanCategory(row)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return created, nil
}

// Update patches a category in place.
func (repository *PostgresRepository) Update(context context.Context, id string, input Input) (*Category, error) {
	row := repository.db.QueryRow(context, updateQuery, id, input.Name, input.Icon, input.SortOrder)

	updated, err := scanCategory(row)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return updated, nil
}
