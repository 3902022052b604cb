package model

import (
	"fmt"
	"time"
)

// Ticket is a purchase of one or more seats for a movie. A ticket
// always points at exactly one movie; the movie's Tickets collection
// holds the other side of the association and the two are kept in sync
// by SetMovie. Date defaults to the creation time when left unset.
type Ticket struct {
	ID           uint64    `json:"id"`
	MovieID      uint64    `json:"movie_id" validate:"required"`
	Movie        *Movie    `json:"movie,omitempty" validate:"-"`
	Count        int       `json:"count" validate:"required,min=1,max=50"`
	Date         time.Time `json:"date"`
	CustomerName string    `json:"customer_name" validate:"required,min=1,max=200"`
}

// Equal reports entity identity: two tickets are the same record only
// when both carry a persisted, equal ID. A transient ticket (ID 0) is
// equal to nothing, a second fetch of itself included. This mirrors
// the persisted-identity rule of the storage layer and is relied on by
// the collection bookkeeping in Movie.
func (t *Ticket) Equal(other *Ticket) bool {
	if other == nil {
		return false
	}
	return t.ID != 0 && t.ID == other.ID
}

// SetMovie points the ticket at m and keeps both sides of the
// association consistent: the ticket leaves its previous movie's
// collection, then joins m's collection unless already present.
// Setting the same movie again is a no-op, so repeated calls cause no
// removal/re-add churn. A nil m is the detach form. Total over all
// (current state, m) inputs; never fails.
func (t *Ticket) SetMovie(m *Movie) {
	if t.Movie != nil && t.Movie == m {
		return
	}
	if t.Movie != nil {
		old := t.Movie
		t.Movie = nil
		t.MovieID = 0
		old.dropTicket(t)
	}
	t.Movie = m
	if m != nil {
		t.MovieID = m.ID
		if !m.containsTicket(t) {
			m.Tickets = append(m.Tickets, t)
		}
	}
}

// Detach removes the ticket from its current movie's collection and
// clears the back-reference. No-op when already detached.
func (t *Ticket) Detach() {
	if t.Movie == nil {
		return
	}
	old := t.Movie
	t.Movie = nil
	t.MovieID = 0
	old.dropTicket(t)
}

// TransferTo moves the ticket from its old movie (if any) to newMovie
// in one step from the caller's perspective.
func (t *Ticket) TransferTo(newMovie *Movie) {
	t.SetMovie(newMovie)
}

// TotalPrice is the movie's ticket price times the seat count, or 0
// when the movie reference is absent.
func (t *Ticket) TotalPrice() int {
	if t.Movie == nil {
		return 0
	}
	return t.Movie.TicketPrice * t.Count
}

// FormattedDate renders the purchase time for display, with a plain
// space instead of the machine-readable date/time separator.
func (t *Ticket) FormattedDate() string {
	if t.Date.IsZero() {
		return ""
	}
	return t.Date.Format("2006-01-02 15:04:05")
}

// FormattedTotalPrice renders the total with a currency suffix, or an
// empty string when there is nothing to charge.
func (t *Ticket) FormattedTotalPrice() string {
	total := t.TotalPrice()
	if total > 0 {
		return fmt.Sprintf("%d RUB", total)
	}
	return ""
}
