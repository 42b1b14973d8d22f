// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/sitenav/internal/platform/apperr"
	"github.com/taibuivan/sitenav/internal/platform/database/schema"
	"github.com/taibuivan/sitenav/internal/platform/dberr"
	"github.com/taibuivan/sitenav/internal/platform/postgres"
)

const resourceName = "Site"

// PostgresRepository implements [Repository] on core.site.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository constructs a PostgreSQL backed site store.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	table   = schema.CoreSite.Table
	columns = schema.List(schema.CoreSite.Columns())

	listAllQuery = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		columns, table, schema.CoreSite.CreatedAt)

	listActiveQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = true ORDER BY %s ASC NULLS LAST, %s DESC`,
		columns, table, schema.CoreSite.IsActive, schema.CoreSite.SortOrder, schema.CoreSite.CreatedAt)

	findQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columns, table, schema.CoreSite.ID)

	insertQuery = fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING %s`,
		table,
		schema.List([]string{
			schema.CoreSite.ID, schema.CoreSite.Title, schema.CoreSite.Subtitle,
			schema.CoreSite.URL, schema.CoreSite.Image, schema.CoreSite.Category,
			schema.CoreSite.Tags, schema.CoreSite.IsActive, schema.CoreSite.SortOrder,
		}),
		columns)

	updateQuery = fmt.Sprintf(`UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = COALESCE($8, %s),
			%s = $9,
			%s = now()
		WHERE %s = $1
		RETURNING %s`,
		table,
		schema.CoreSite.Title, schema.CoreSite.Subtitle, schema.CoreSite.URL,
		schema.CoreSite.Image, schema.CoreSite.Category, schema.CoreSite.Tags,
		schema.CoreSite.IsActive, schema.CoreSite.IsActive,
		schema.CoreSite.SortOrder,
		schema.CoreSite.UpdatedAt,
		schema.CoreSite.ID,
		columns)

	setActiveQuery = fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1 RETURNING %s`,
		table, schema.CoreSite.IsActive, schema.CoreSite.UpdatedAt, schema.CoreSite.ID, columns)

	deleteQuery = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, schema.CoreSite.ID)

	tagSetsQuery = fmt.Sprintf(`SELECT %s FROM %s`, schema.CoreSite.Tags, table)
)

func scanSite(row pgx.Row) (*Site, error) {
	site := &Site{}
	err := row.Scan(
		&site.ID, &site.Title, &site.Subtitle, &site.URL, &site.Image,
		&site.Category, &site.Tags, &site.IsActive, &site.SortOrder, &site.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if site.Tags == nil {
		site.Tags = []string{}
	}
	return site, nil
}

func (repository *PostgresRepository) list(context context.Context, query string) ([]*Site, error) {
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	sites := make([]*Site, 0)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	return sites, nil
}

// ListAll returns every site, newest first.
func (repository *PostgresRepository) ListAll(context context.Context) ([]*Site, error) {
	return repository.list(context, listAllQuery)
}

// ListActive returns the publicly visible sites.
func (repository *PostgresRepository) ListActive(context context.Context) ([]*Site, error) {
	return repository.list(context, listActiveQuery)
}

// FindByID returns the site with id.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Site, error) {
	site, err := scanSite(repository.db.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return site, nil
}

// Create inserts site.
func (repository *PostgresRepository) Create(context context.Context, site *Site) (*Site, error) {
	row := repository.db.QueryRow(context, insertQuery,
		site.ID, site.Title, site.Subtitle, site.URL, site.Image,
		site.Category, site.Tags, site.IsActive, site.SortOrder,
	)

	created, err := scanSite(row)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return created, nil
}

// Update replaces the editable fields of the site with id.
func (repository *PostgresRepository) Update(context context.Context, id string, input Input) (*Site, error) {
	row := repository.db.QueryRow(context, updateQuery,
		id, input.Title, input.Subtitle, input.URL, input.Image,
		input.Category, input.Tags, input.IsActive, input.SortOrder,
	)

	updated, err := scanSite(row)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return updated, nil
}

// SetActive sets the active flag of the site with id.
func (repository *PostgresRepository) SetActive(context context.Context, id string, active bool) (*Site, error) {
	updated, err := scanSite(repository.db.QueryRow(context, setActiveQuery, id, active))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return updated, nil
}

// Delete removes the site with id.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, deleteQuery, id)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

// ListTagSets returns the tags column of every row.
func (repository *PostgresRepository) ListTagSets(context context.Context) ([][]string, error) {
	rows, err := repository.db.Query(context, tagSetsQuery)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	tagSets := make([][]string, 0)
	for rows.Next() {
		var tags []string
		if err := rows.Scan(&tags); err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		tagSets = append(tagSets, tags)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	return tagSets, nil
}
