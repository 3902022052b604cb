// Package service holds the business rules between HTTP handlers and
// repositories: the genre title uniqueness guard, the delete-only-if-
// empty rule, the rating bounds re-check and ticket defaulting.
// Rule violations are returned as values (FieldError, sentinel errors),
// never as panics; only storage failures propagate as plain errors.
package service

import (
	"context"

	"cinema-management/internal/model"
	"cinema-management/internal/repository"
)

// GenreService orchestrates genre CRUD plus the two genre business
// rules: unique titles and guarded deletion.
type GenreService struct {
	genres *repository.GenreRepo
}

// NewGenreService constructs a GenreService and panics if the
// repository is nil.
func NewGenreService(genres *repository.GenreRepo) *GenreService {
	if genres == nil {
		panic("nil repository passed to NewGenreService")
	}
	return &GenreService{genres: genres}
}

// GetAll returns every genre sorted by title.
func (s *GenreService) GetAll(ctx context.Context) ([]*model.Genre, error) {
	return s.genres.ListAll(ctx)
}

// GetByID returns one genre or repository.ErrGenreNotFound.
func (s *GenreService) GetByID(ctx context.Context, id uint64) (*model.Genre, error) {
	return s.genres.GetByID(ctx, id)
}

// Exists reports whether a genre with exactly this title is stored.
func (s *GenreService) Exists(ctx context.Context, title string) (bool, error) {
	return s.genres.ExistsByTitle(ctx, title)
}

// Save validates and persists a genre, inserting when the ID is unset
// and updating otherwise. The unique-title rule is checked proactively
// so the caller gets a field-tagged message instead of a raw constraint
// violation:
//
//   - new genre: reject when any genre already has the title;
//   - update: fetch the stored row and re-check only when the title
//     actually changed, so a genre never collides with itself.
//
// A non-nil FieldError means validation failed and nothing was saved.
func (s *GenreService) Save(ctx context.Context, g *model.Genre) (*model.FieldError, error) {
	if fe := model.Validate(g); fe != nil {
		return fe, nil
	}
	if g.ID == 0 {
		taken, err := s.genres.ExistsByTitle(ctx, g.Title)
		if err != nil {
			return nil, err
		}
		if taken {
			return &model.FieldError{Field: "title", Message: "a genre with this title already exists"}, nil
		}
		return nil, s.genres.Create(ctx, g)
	}

	stored, err := s.genres.GetByID(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	if stored.Title != g.Title {
		taken, err := s.genres.ExistsByTitle(ctx, g.Title)
		if err != nil {
			return nil, err
		}
		if taken {
			return &model.FieldError{Field: "title", Message: "a genre with this title already exists"}, nil
		}
	}
	return nil, s.genres.Update(ctx, g)
}

// Delete removes a genre only when no movie references it. The
// check-then-delete sequence runs in one transaction inside the
// repository. Returns repository.ErrGenreNotFound or
// repository.ErrGenreInUse when the genre cannot be deleted.
func (s *GenreService) Delete(ctx context.Context, id uint64) error {
	return s.genres.DeleteIfUnused(ctx, id)
}
