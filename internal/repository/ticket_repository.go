package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cinema-management/internal/model"
)

// ErrTicketNotFound is returned when a ticket cannot be found in the DB.
var ErrTicketNotFound = errors.New("ticket not found")

// ticketColumns is the SELECT list shared by every ticket query. The
// movie is joined in so the derived total price can be computed without
// a second round-trip. `count` needs quoting because it collides with
// the SQL function name.
const ticketColumns = "t.id, t.movie_id, t.`count`, t.date, t.customer_name, m.title, m.ticket_price"

// TicketRepo manages persistence for tickets.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// DB exposes the underlying sql.DB.
func (r *TicketRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new ticket and assigns the generated ID back to the
// struct. The caller is expected to have defaulted Date already; the
// column keeps a DB-side default as a backstop.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	const q = "INSERT INTO tickets (movie_id, `count`, date, customer_name) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, t.MovieID, t.Count, t.Date, t.CustomerName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// Update rewrites all mutable columns of an existing ticket.
func (r *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	const q = "UPDATE tickets SET movie_id = ?, `count` = ?, date = ?, customer_name = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, t.MovieID, t.Count, t.Date, t.CustomerName, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM tickets WHERE id = ?`, t.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTicketNotFound
		}
		return err
	}
	return nil
}

// GetByID retrieves a ticket with its movie. Returns ErrTicketNotFound
// when there is no matching row.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets t JOIN movies m ON m.id = t.movie_id WHERE t.id = ?`
	t := new(model.Ticket)
	if err := scanTicket(r.db.QueryRowContext(ctx, q, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListAll returns every ticket, most recent purchase first.
func (r *TicketRepo) ListAll(ctx context.Context) ([]*model.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets t JOIN movies m ON m.id = t.movie_id ORDER BY t.date DESC`
	return r.queryTickets(ctx, q)
}

// ListByMovie returns all tickets sold for a movie, most recent first.
func (r *TicketRepo) ListByMovie(ctx context.Context, movieID uint64) ([]*model.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets t JOIN movies m ON m.id = t.movie_id WHERE t.movie_id = ? ORDER BY t.date DESC`
	return r.queryTickets(ctx, q, movieID)
}

// SearchByCustomer returns tickets whose customer name contains the
// given substring, case-insensitively, most recent first.
func (r *TicketRepo) SearchByCustomer(ctx context.Context, customer string) ([]*model.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets t JOIN movies m ON m.id = t.movie_id WHERE LOWER(t.customer_name) LIKE ? ORDER BY t.date DESC`
	return r.queryTickets(ctx, q, "%"+strings.ToLower(customer)+"%")
}

// Delete removes a ticket by id. Returns ErrTicketNotFound when no row
// was deleted.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepo) queryTickets(ctx context.Context, q string, args ...any) ([]*model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Ticket
	for rows.Next() {
		t := new(model.Ticket)
		if err := scanTicket(rows, t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanTicket populates a ticket from a row matching ticketColumns. The
// joined movie carries just enough (title, price) for display and for
// the total price computation.
func scanTicket(row interface{ Scan(dest ...any) error }, t *model.Ticket) error {
	m := new(model.Movie)
	if err := row.Scan(&t.ID, &t.MovieID, &t.Count, &t.Date, &t.CustomerName, &m.Title, &m.TicketPrice); err != nil {
		return err
	}
	m.ID = t.MovieID
	t.Movie = m
	return nil
}
