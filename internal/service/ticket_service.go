package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cinema-management/internal/model"
	"cinema-management/internal/queue"
	"cinema-management/internal/repository"
)

// TicketService orchestrates ticket CRUD. Saving defaults the purchase
// date, resolves and attaches the movie, and announces new sales on the
// message queue.
type TicketService struct {
	tickets *repository.TicketRepo
	movies  *repository.MovieRepo

	// publish is swappable in tests so unit tests do not dial a broker.
	publish func(ctx context.Context, ev queue.TicketSoldEvent) error
}

// NewTicketService constructs a TicketService and panics if any
// dependency is nil.
func NewTicketService(tickets *repository.TicketRepo, movies *repository.MovieRepo) *TicketService {
	if tickets == nil || movies == nil {
		panic("nil repository passed to NewTicketService")
	}
	return &TicketService{
		tickets: tickets,
		movies:  movies,
		publish: queue.PublishTicketSold,
	}
}

// GetAll returns every ticket, most recent purchase first.
func (s *TicketService) GetAll(ctx context.Context) ([]*model.Ticket, error) {
	return s.tickets.ListAll(ctx)
}

// GetByID returns one ticket or repository.ErrTicketNotFound.
func (s *TicketService) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// GetByMovie returns all tickets sold for a movie, most recent first.
func (s *TicketService) GetByMovie(ctx context.Context, movieID uint64) ([]*model.Ticket, error) {
	return s.tickets.ListByMovie(ctx, movieID)
}

// GetByCustomer returns tickets whose customer name contains the query
// substring, case-insensitively.
func (s *TicketService) GetByCustomer(ctx context.Context, customer string) ([]*model.Ticket, error) {
	return s.tickets.SearchByCustomer(ctx, strings.TrimSpace(customer))
}

// Save validates and persists a ticket. An unset purchase date
// defaults to now. The referenced movie must exist; it is attached
// through SetMovie so the in-memory association stays consistent and
// the total price can be derived immediately. New tickets additionally
// produce a ticket.sold event; publishing is best effort and a broker
// outage never fails the sale.
// A non-nil FieldError means validation failed and nothing was saved.
func (s *TicketService) Save(ctx context.Context, t *model.Ticket) (*model.FieldError, error) {
	if t.Date.IsZero() {
		t.Date = time.Now().UTC()
	}
	if fe := model.Validate(t); fe != nil {
		return fe, nil
	}
	movie, err := s.movies.GetByID(ctx, t.MovieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return &model.FieldError{Field: "movie_id", Message: "movie does not exist"}, nil
		}
		return nil, err
	}
	t.SetMovie(movie)

	isNew := t.ID == 0
	if isNew {
		err = s.tickets.Create(ctx, t)
	} else {
		err = s.tickets.Update(ctx, t)
	}
	if err != nil {
		return nil, err
	}

	if isNew {
		ev := queue.TicketSoldEvent{
			TicketID:     t.ID,
			MovieID:      movie.ID,
			MovieTitle:   movie.Title,
			Count:        t.Count,
			CustomerName: t.CustomerName,
			TotalPrice:   t.TotalPrice(),
			SoldAt:       t.FormattedDate(),
		}
		if err := s.publish(ctx, ev); err != nil {
			log.Printf("ticket service: publish ticket.sold failed: %v", err)
		}
	}
	return nil, nil
}

// Delete removes a ticket by id. Returns repository.ErrTicketNotFound
// when the ticket does not exist.
func (s *TicketService) Delete(ctx context.Context, id uint64) error {
	return s.tickets.Delete(ctx, id)
}
