// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sitenav/internal/core/category"
	"github.com/taibuivan/sitenav/internal/platform/apperr"
	"github.com/taibuivan/sitenav/pkg/pointer"
)

var categoryColumns = []string{"id", "name", "icon", "sortorder"}

func newRepository(t *testing.T) (*category.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return category.NewPostgresRepository(mock), mock
}

func TestPostgresRepository_List(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`SELECT id, name, icon, sortorder FROM core.category ORDER BY sortorder ASC, id ASC`).
		WillReturnRows(pgxmock.NewRows(categoryColumns).
			AddRow("design", "Design", pointer.To("palette"), 0).
			AddRow("dev", "Development", nil, 1))

	categories, err := repository.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, "design", categories[0].ID)
	assert.Equal(t, "palette", *categories[0].Icon)
	assert.Equal(t, "dev", categories[1].ID)
	assert.Nil(t, categories[1].Icon)
	assert.Equal(t, 1, categories[1].SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_List_Empty(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`SELECT (.+) FROM core.category`).
		WillReturnRows(pgxmock.NewRows(categoryColumns))

	categories, err := repository.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestPostgresRepository_List_QueryError(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`SELECT (.+) FROM core.category`).WillReturnError(errors.New("connection reset"))

	_, err := repository.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)
}

func TestPostgresRepository_Create(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`INSERT INTO core.category \(id, name, icon, sortorder\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING`).
		WithArgs("tools", "Tools", pgxmock.AnyArg(), 2).
		WillReturnRows(pgxmock.NewRows(categoryColumns).AddRow("tools", "Tools", nil, 2))

	created, err := repository.Create(context.Background(), &category.Category{ID: "tools", Name: "Tools", SortOrder: 2})
	require.NoError(t, err)
	assert.Equal(t, "tools", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Create_Duplicate(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`INSERT INTO core.category`).
		WithArgs("dev", "Dev", pgxmock.AnyArg(), 0).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repository.Create(context.Background(), &category.Category{ID: "dev", Name: "Dev"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestPostgresRepository_Update(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`UPDATE core.category SET`).
		WithArgs("dev", "Engineering", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(categoryColumns).AddRow("dev", "Engineering", nil, 1))

	updated, err := repository.Update(context.Background(), "dev", category.Input{Name: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", updated.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Update_NotFound(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`UPDATE core.category SET`).
		WithArgs("ghost", "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repository.Update(context.Background(), "ghost", category.Input{})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
