package handler

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateTicketUnknownMovie(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`FROM movies m JOIN genres g ON g.id = m.genre_id WHERE m.id`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	rec := request(t, http.MethodPost, "/v1/tickets",
		`{"movie_id":99,"count":2,"customer_name":"Anna"}`, "", "", h.CreateTicket)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "movie_id", body["field"])
	assert.NoError(t, mock.ExpectationsWereMet(), "no INSERT may run for a dangling movie")
}

func TestCreateTicketValidationFailure(t *testing.T) {
	h, mock := newTestHandler(t)

	rec := request(t, http.MethodPost, "/v1/tickets",
		`{"movie_id":1,"count":0,"customer_name":"Anna"}`, "", "", h.CreateTicket)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "validation_failed", body["error"])
	assert.Equal(t, "count", body["field"])
	assert.NoError(t, mock.ExpectationsWereMet(), "a zero count never reaches the DB")
}

func TestGetTicketDerivedFields(t *testing.T) {
	h, mock := newTestHandler(t)

	date := time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM tickets t JOIN movies m ON m.id = t.movie_id WHERE t.id`).
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "movie_id", "count", "date", "customer_name", "m_title", "m_ticket_price",
		}).AddRow(12, 1, 3, date, "Anna", "Joker", 400))

	rec := request(t, http.MethodGet, "/v1/tickets/12", "", "id", "12", h.GetTicket)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1200), body["total_price"])
	assert.Equal(t, "2024-01-10 18:30:00", body["date"])
}

func TestGetTicketNotFound(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(`FROM tickets t JOIN movies m ON m.id = t.movie_id WHERE t.id`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	rec := request(t, http.MethodGet, "/v1/tickets/99", "", "id", "99", h.GetTicket)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTicketNotFound(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec(`DELETE FROM tickets WHERE id`).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := request(t, http.MethodDelete, "/v1/tickets/99", "", "id", "99", h.DeleteTicket)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTicketNoContent(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec(`DELETE FROM tickets WHERE id`).
		WithArgs(uint64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := request(t, http.MethodDelete, "/v1/tickets/12", "", "id", "12", h.DeleteTicket)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
