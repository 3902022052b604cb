package service

import (
	"context"
	"errors"
	"strings"

	"cinema-management/internal/model"
	"cinema-management/internal/repository"
)

// MovieService orchestrates movie CRUD. Deleting a movie cascades to
// its tickets; saving re-checks the rating bounds on top of the
// declarative validation layer.
type MovieService struct {
	movies *repository.MovieRepo
	genres *repository.GenreRepo
}

// NewMovieService constructs a MovieService and panics if any
// dependency is nil.
func NewMovieService(movies *repository.MovieRepo, genres *repository.GenreRepo) *MovieService {
	if movies == nil || genres == nil {
		panic("nil repository passed to NewMovieService")
	}
	return &MovieService{movies: movies, genres: genres}
}

// GetAll returns every movie sorted by title.
func (s *MovieService) GetAll(ctx context.Context) ([]*model.Movie, error) {
	return s.movies.ListAll(ctx)
}

// GetByID returns one movie or repository.ErrMovieNotFound.
func (s *MovieService) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	return s.movies.GetByID(ctx, id)
}

// GetByGenre returns all movies of a genre sorted by title.
func (s *MovieService) GetByGenre(ctx context.Context, genreID uint64) ([]*model.Movie, error) {
	return s.movies.ListByGenre(ctx, genreID)
}

// Search returns movies whose title contains the query substring,
// case-insensitively.
func (s *MovieService) Search(ctx context.Context, title string) ([]*model.Movie, error) {
	return s.movies.SearchByTitle(ctx, strings.TrimSpace(title))
}

// Save validates and persists a movie. The rating bound is re-checked
// here independently of the tag validation on the entity: the save
// path must reject out-of-range ratings even if the declarative layer
// is ever bypassed or reconfigured. The referenced genre must exist.
// A non-nil FieldError means validation failed and nothing was saved.
func (s *MovieService) Save(ctx context.Context, m *model.Movie) (*model.FieldError, error) {
	if fe := model.Validate(m); fe != nil {
		return fe, nil
	}
	if m.Rating != nil && (*m.Rating < 0.0 || *m.Rating > 10.0) {
		return &model.FieldError{Field: "rating", Message: "must be between 0.0 and 10.0"}, nil
	}
	if _, err := s.genres.GetByID(ctx, m.GenreID); err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return &model.FieldError{Field: "genre_id", Message: "genre does not exist"}, nil
		}
		return nil, err
	}
	if m.ID == 0 {
		return nil, s.movies.Create(ctx, m)
	}
	return nil, s.movies.Update(ctx, m)
}

// Delete removes a movie together with all its tickets in one
// transaction. Returns repository.ErrMovieNotFound when the movie does
// not exist.
func (s *MovieService) Delete(ctx context.Context, id uint64) error {
	return s.movies.Delete(ctx, id)
}
