package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "genre_id", "ticket_price", "duration_minutes",
		"release_year", "rating", "description", "g_title", "g_description",
	})
}

func TestMovieSearchByTitleCaseInsensitive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery(`FROM movies m JOIN genres g ON g.id = m.genre_id WHERE LOWER\(m.title\) LIKE`).
		WithArgs("%jok%").
		WillReturnRows(movieRows().
			AddRow(1, "Joker", 2, 400, 122, 2019, 8.5, "Gotham drama", "Drama", nil))

	// Mixed-case input must be lowered before it reaches the DB.
	movies, err := repo.SearchByTitle(context.Background(), "JoK")
	require.NoError(t, err)
	require.Len(t, movies, 1)

	m := movies[0]
	assert.Equal(t, "Joker", m.Title)
	require.NotNil(t, m.Genre)
	assert.Equal(t, "Drama", m.Genre.Title)
	assert.Equal(t, m.GenreID, m.Genre.ID)
	require.NotNil(t, m.Rating)
	assert.InDelta(t, 8.5, *m.Rating, 0.001)
}

func TestMovieGetByIDNullableFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery(`FROM movies m JOIN genres g ON g.id = m.genre_id WHERE m.id`).
		WithArgs(uint64(7)).
		WillReturnRows(movieRows().
			AddRow(7, "Alien", 3, 350, 117, 1979, nil, nil, "Horror", "Scary movies"))

	m, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, m.Rating)
	assert.Empty(t, m.Description)
	assert.Equal(t, "Horror", m.Genre.Title)
}

func TestMovieGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery(`FROM movies m JOIN genres g ON g.id = m.genre_id WHERE m.id`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieDeleteCascadesToTickets(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM movies WHERE id`).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM tickets WHERE movie_id`).
		WithArgs(uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM movies WHERE id`).
		WithArgs(uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet(), "tickets must go before the movie, in one tx")
}

func TestMovieDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM movies WHERE id`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}
