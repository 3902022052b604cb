package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-management/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestGenreCreateAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGenreRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO genres (title, description) VALUES (?, ?)`)).
		WithArgs("Comedy", "Funny movies").
		WillReturnResult(sqlmock.NewResult(3, 1))

	g := &model.Genre{Title: "Comedy", Description: "Funny movies"}
	require.NoError(t, repo.Create(context.Background(), g))
	assert.Equal(t, uint64(3), g.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGenreRepo(db)

	mock.ExpectQuery(`SELECT id, title, description FROM genres WHERE id`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestGenreExistsByTitle(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGenreRepo(db)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM genres WHERE BINARY title`).
		WithArgs("Comedy").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByTitle(context.Background(), "Comedy")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteIfUnusedDeletes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGenreRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM genres WHERE id`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM movies WHERE genre_id`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM genres WHERE id`).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteIfUnused(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIfUnusedBlockedByMovies(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGenreRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM genres WHERE id`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM movies WHERE genre_id`)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := repo.DeleteIfUnused(context.Background(), 5)
	assert.ErrorIs(t, err, ErrGenreInUse)
	assert.NoError(t, mock.ExpectationsWereMet(), "no DELETE may run when movies exist")
}

func TestDeleteIfUnusedNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGenreRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM genres WHERE id`).
		WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.DeleteIfUnused(context.Background(), 42)
	assert.ErrorIs(t, err, ErrGenreNotFound)
}
