package model

import "fmt"

// Movie is a film in the catalog. Every movie belongs to exactly one
// genre and owns the tickets sold for it: deleting a movie deletes its
// tickets, never the other way round. The Tickets slice and each
// ticket's Movie pointer are kept mutually consistent through
// Ticket.SetMovie and the AddTicket/RemoveTicket helpers below; code
// outside this package should not append to Tickets directly.
//
// Genre is populated by the repository on reads (eager, like the rest
// of the row); GenreID is what gets persisted.
type Movie struct {
	ID              uint64    `json:"id"`
	Title           string    `json:"title" validate:"required,min=1,max=200"`
	GenreID         uint64    `json:"genre_id" validate:"required"`
	Genre           *Genre    `json:"genre,omitempty" validate:"-"`
	TicketPrice     int       `json:"ticket_price" validate:"required,min=100,max=1000"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=60"`
	ReleaseYear     int       `json:"release_year" validate:"required,min=1900,max=2100"`
	Rating          *float64  `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	Description     string    `json:"description,omitempty" validate:"max=500"`
	Tickets         []*Ticket `json:"-" validate:"-"`
}

// AddTicket attaches t to this movie. It delegates to the SetMovie
// primitive, which removes t from any previous movie and guards
// against duplicate entries in the collection.
func (m *Movie) AddTicket(t *Ticket) {
	t.SetMovie(m)
}

// RemoveTicket detaches t from this movie: drops it from the
// collection and clears the back-reference.
func (m *Movie) RemoveTicket(t *Ticket) {
	m.dropTicket(t)
	t.SetMovie(nil)
}

// containsTicket reports membership by entity identity. Persisted
// tickets match by ID; transient tickets (ID 0) only ever match the
// same instance.
func (m *Movie) containsTicket(t *Ticket) bool {
	for _, cur := range m.Tickets {
		if cur == t || cur.Equal(t) {
			return true
		}
	}
	return false
}

// dropTicket removes the first entry identical to t, if any.
func (m *Movie) dropTicket(t *Ticket) {
	for i, cur := range m.Tickets {
		if cur == t || cur.Equal(t) {
			m.Tickets = append(m.Tickets[:i], m.Tickets[i+1:]...)
			return
		}
	}
}

// FormattedDuration renders the runtime as "H h M m", or just "M m"
// for movies under an hour.
func (m *Movie) FormattedDuration() string {
	hours := m.DurationMinutes / 60
	minutes := m.DurationMinutes % 60
	if hours > 0 {
		return fmt.Sprintf("%d h %d m", hours, minutes)
	}
	return fmt.Sprintf("%d m", minutes)
}

// FormattedTicketPrice renders the ticket price with a currency suffix.
func (m *Movie) FormattedTicketPrice() string {
	return fmt.Sprintf("%d RUB", m.TicketPrice)
}
