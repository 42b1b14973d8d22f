// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sitenav/internal/core/site"
	"github.com/taibuivan/sitenav/internal/platform/apperr"
	"github.com/taibuivan/sitenav/pkg/pointer"
)

const siteID = "01928f5e-7c1a-7b3e-8a4d-2f6c9e0b1a2c"

var siteColumns = []string{"id", "title", "subtitle", "url", "image", "category", "tags", "isactive", "sortorder", "createdat"}

func newRepository(t *testing.T) (*site.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return site.NewPostgresRepository(mock), mock
}

func siteRow(rows *pgxmock.Rows, id, title string, active bool) *pgxmock.Rows {
	return rows.AddRow(id, title, "", "https://"+title+".dev", nil, "dev", []string{"go"}, active, nil, time.Unix(1700000000, 0))
}

func TestPostgresRepository_ListAll(t *testing.T) {
	repository, mock := newRepository(t)

	rows := pgxmock.NewRows(siteColumns)
	siteRow(rows, siteID, "react", true)
	siteRow(rows, "01928f5e-0000-7000-8000-000000000002", "vue", false)
	mock.ExpectQuery(`SELECT (.+) FROM core.site ORDER BY createdat DESC`).WillReturnRows(rows)

	sites, err := repository.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.Equal(t, "react", sites[0].Title)
	assert.Equal(t, []string{"go"}, sites[0].Tags)
	assert.Nil(t, sites[0].Image)
	assert.Nil(t, sites[0].SortOrder)
	assert.False(t, sites[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListActive(t *testing.T) {
	repository, mock := newRepository(t)

	rows := pgxmock.NewRows(siteColumns).
		AddRow(siteID, "React", "UI", "https://react.dev", pointer.To("https://react.dev/icon.png"), "dev", nil, true, pointer.To(1), time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM core.site WHERE isactive = true ORDER BY sortorder ASC NULLS LAST, createdat DESC`).
		WillReturnRows(rows)

	sites, err := repository.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)

	assert.Equal(t, "https://react.dev/icon.png", *sites[0].Image)
	assert.Equal(t, 1, *sites[0].SortOrder)
	assert.NotNil(t, sites[0].Tags)
	assert.Empty(t, sites[0].Tags)
}

func TestPostgresRepository_FindByID_NotFound(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`SELECT (.+) FROM core.site WHERE id = \$1`).
		WithArgs(siteID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repository.FindByID(context.Background(), siteID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestPostgresRepository_Create(t *testing.T) {
	repository, mock := newRepository(t)

	input := &site.Site{ID: siteID, Title: "Go", URL: "https://go.dev", Category: "dev", Tags: []string{"backend"}, IsActive: true}

	mock.ExpectQuery(`INSERT INTO core.site \(id, title, subtitle, url, image, category, tags, isactive, sortorder\)`).
		WithArgs(siteID, "Go", "", "https://go.dev", pgxmock.AnyArg(), "dev", []string{"backend"}, true, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(siteColumns).
			AddRow(siteID, "Go", "", "https://go.dev", nil, "dev", []string{"backend"}, true, nil, time.Now()))

	created, err := repository.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, siteID, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Create_CheckViolation(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`INSERT INTO core.site`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23514"})

	_, err := repository.Create(context.Background(), &site.Site{ID: siteID})
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Update(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`UPDATE core.site SET`).
		WithArgs(siteID, "Go", "", "https://go.dev", pgxmock.AnyArg(), "dev", []string{}, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(siteColumns).
			AddRow(siteID, "Go", "", "https://go.dev", nil, "dev", []string{}, false, nil, time.Now()))

	updated, err := repository.Update(context.Background(), siteID, site.Input{Title: "Go", URL: "https://go.dev", Category: "dev", Tags: []string{}})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetActive(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`UPDATE core.site SET isactive = \$2`).
		WithArgs(siteID, false).
		WillReturnRows(pgxmock.NewRows(siteColumns).
			AddRow(siteID, "Go", "", "https://go.dev", nil, "dev", []string{}, false, nil, time.Now()))

	updated, err := repository.SetActive(context.Background(), siteID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestPostgresRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repository, mock := newRepository(t)
		mock.ExpectExec(`DELETE FROM core.site WHERE id = \$1`).
			WithArgs(siteID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repository.Delete(context.Background(), siteID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repository, mock := newRepository(t)
		mock.ExpectExec(`DELETE FROM core.site`).
			WithArgs(siteID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repository.Delete(context.Background(), siteID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("failure", func(t *testing.T) {
		repository, mock := newRepository(t)
		mock.ExpectExec(`DELETE FROM core.site`).
			WithArgs(siteID).
			WillReturnError(errors.New("broken pipe"))

		err := repository.Delete(context.Background(), siteID)
		assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)
	})
}

func TestPostgresRepository_ListTagSets(t *testing.T) {
	repository, mock := newRepository(t)

	mock.ExpectQuery(`SELECT tags FROM core.site`).
		WillReturnRows(pgxmock.NewRows([]string{"tags"}).
			AddRow([]string{"go", "backend"}).
			AddRow([]string{}))

	tagSets, err := repository.ListTagSets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"go", "backend"}, {}}, tagSets)
}
