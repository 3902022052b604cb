package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-management/internal/model"
	"cinema-management/internal/queue"
	"cinema-management/internal/repository"
)

func newTicketService(t *testing.T) (*TicketService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return NewTicketService(repository.NewTicketRepo(db), repository.NewMovieRepo(db)), mock
}

func TestSaveNewTicketPublishesSoldEvent(t *testing.T) {
	svc, mock := newTicketService(t)

	var published []queue.TicketSoldEvent
	svc.publish = func(ctx context.Context, ev queue.TicketSoldEvent) error {
		published = append(published, ev)
		return nil
	}

	mock.ExpectQuery(`FROM movies m JOIN genres g ON g.id = m.genre_id WHERE m.id`).
		WithArgs(uint64(1)).
		WillReturnRows(movieJoinRows().
			AddRow(1, "Joker", 2, 400, 122, 2019, 8.5, nil, "Drama", nil))
	mock.ExpectExec(`INSERT INTO tickets`).
		WithArgs(uint64(1), 3, sqlmock.AnyArg(), "Anna").
		WillReturnResult(sqlmock.NewResult(12, 1))

	ticket := &model.Ticket{MovieID: 1, Count: 3, CustomerName: "Anna"}
	fe, err := svc.Save(context.Background(), ticket)
	require.NoError(t, err)
	assert.Nil(t, fe)

	assert.False(t, ticket.Date.IsZero(), "an unset purchase date defaults to now")
	assert.Equal(t, uint64(12), ticket.ID)

	require.Len(t, published, 1)
	ev := published[0]
	assert.Equal(t, uint64(12), ev.TicketID)
	assert.Equal(t, "Joker", ev.MovieTitle)
	assert.Equal(t, 1200, ev.TotalPrice)
	assert.Equal(t, ticket.FormattedDate(), ev.SoldAt)
}

func TestSaveExistingTicketDoesNotPublish(t *testing.T) {
	svc, mock := newTicketService(t)

	calls := 0
	svc.publish = func(ctx context.Context, ev queue.TicketSoldEvent) error {
		calls++
		return nil
	}

	date := time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM movies m JOIN genres g ON g.id = m.genre_id WHERE m.id`).
		WithArgs(uint64(1)).
		WillReturnRows(movieJoinRows().
			AddRow(1, "Joker", 2, 400, 122, 2019, nil, nil, "Drama", nil))
	mock.ExpectExec(`UPDATE tickets SET`).
		WithArgs(uint64(1), 2, date, "Anna", uint64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ticket := &model.Ticket{ID: 12, MovieID: 1, Count: 2, Date: date, CustomerName: "Anna"}
	fe, err := svc.Save(context.Background(), ticket)
	require.NoError(t, err)
	assert.Nil(t, fe)
	assert.Zero(t, calls, "updates are not new sales")
}

func TestSaveTicketRejectsMissingMovie(t *testing.T) {
	svc, mock := newTicketService(t)

	svc.publish = func(ctx context.Context, ev queue.TicketSoldEvent) error {
		t.Fatal("publish must not be called when the movie does not exist")
		return nil
	}

	mock.ExpectQuery(`FROM movies m JOIN genres g ON g.id = m.genre_id WHERE m.id`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	fe, err := svc.Save(context.Background(), &model.Ticket{MovieID: 99, Count: 1, CustomerName: "Anna"})
	require.NoError(t, err)
	require.NotNil(t, fe)
	assert.Equal(t, "movie_id", fe.Field)
	assert.NoError(t, mock.ExpectationsWereMet(), "no INSERT may run for a dangling movie")
}

func TestSaveTicketAttachesMovie(t *testing.T) {
	svc, mock := newTicketService(t)
	svc.publish = func(ctx context.Context, ev queue.TicketSoldEvent) error { return nil }

	mock.ExpectQuery(`FROM movies m JOIN genres g ON g.id = m.genre_id WHERE m.id`).
		WithArgs(uint64(1)).
		WillReturnRows(movieJoinRows().
			AddRow(1, "Joker", 2, 400, 122, 2019, nil, nil, "Drama", nil))
	mock.ExpectExec(`INSERT INTO tickets`).
		WithArgs(uint64(1), 2, sqlmock.AnyArg(), "Anna").
		WillReturnResult(sqlmock.NewResult(13, 1))

	ticket := &model.Ticket{MovieID: 1, Count: 2, CustomerName: "Anna"}
	_, err := svc.Save(context.Background(), ticket)
	require.NoError(t, err)

	require.NotNil(t, ticket.Movie)
	assert.Contains(t, ticket.Movie.Tickets, ticket, "both sides of the association stay in sync")
	assert.Equal(t, 800, ticket.TotalPrice())
}
