package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cinema-management/internal/model"
)

// ErrMovieNotFound is returned when a movie cannot be found in the DB.
var ErrMovieNotFound = errors.New("movie not found")

// movieColumns is the SELECT list shared by every movie query. Genres
// are joined in so callers always receive the movie with its genre
// populated, the way the rest of the application expects it.
const movieColumns = `m.id, m.title, m.genre_id, m.ticket_price, m.duration_minutes, m.release_year, m.rating, m.description, g.title, g.description`

// MovieRepo manages persistence for movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// DB exposes the underlying sql.DB.
func (r *MovieRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new movie and assigns the generated ID back to the
// struct.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, genre_id, ticket_price, duration_minutes, release_year, rating, description) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		m.Title, m.GenreID, m.TicketPrice, m.DurationMinutes, m.ReleaseYear, m.Rating, nullIfEmpty(m.Description))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update rewrites all mutable columns of an existing movie. As with
// genres, zero affected rows is disambiguated with an existence check.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies SET title = ?, genre_id = ?, ticket_price = ?, duration_minutes = ?, release_year = ?, rating = ?, description = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		m.Title, m.GenreID, m.TicketPrice, m.DurationMinutes, m.ReleaseYear, m.Rating, nullIfEmpty(m.Description), m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ?`, m.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovieNotFound
		}
		return err
	}
	return nil
}

// GetByID retrieves a movie with its genre. Returns ErrMovieNotFound
// when there is no matching row.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies m JOIN genres g ON g.id = m.genre_id WHERE m.id = ?`
	m := new(model.Movie)
	if err := scanMovie(r.db.QueryRowContext(ctx, q, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListAll returns every movie ordered alphabetically by title.
func (r *MovieRepo) ListAll(ctx context.Context) ([]*model.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies m JOIN genres g ON g.id = m.genre_id ORDER BY m.title ASC`
	return r.queryMovies(ctx, q)
}

// ListByGenre returns all movies in a genre ordered by title.
func (r *MovieRepo) ListByGenre(ctx context.Context, genreID uint64) ([]*model.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies m JOIN genres g ON g.id = m.genre_id WHERE m.genre_id = ? ORDER BY m.title ASC`
	return r.queryMovies(ctx, q, genreID)
}

// SearchByTitle returns movies whose title contains the given substring,
// case-insensitively, ordered by title.
func (r *MovieRepo) SearchByTitle(ctx context.Context, title string) ([]*model.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies m JOIN genres g ON g.id = m.genre_id WHERE LOWER(m.title) LIKE ? ORDER BY m.title ASC`
	return r.queryMovies(ctx, q, "%"+strings.ToLower(title)+"%")
}

// CountByGenre reports how many movies reference the given genre.
func (r *MovieRepo) CountByGenre(ctx context.Context, genreID uint64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies WHERE genre_id = ?`, genreID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes a movie and all tickets sold for it. The cascade runs
// inside a transaction so no ticket can outlive its movie and no
// partial cleanup occurs. Returns ErrMovieNotFound when the movie does
// not exist.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrMovieNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM tickets WHERE movie_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	return err
}

func (r *MovieRepo) queryMovies(ctx context.Context, q string, args ...any) ([]*model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Movie
	for rows.Next() {
		m := new(model.Movie)
		if err := scanMovie(rows, m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanMovie populates a movie (and its joined genre) from a row
// matching movieColumns. Works for both sql.Row and sql.Rows.
func scanMovie(row interface{ Scan(dest ...any) error }, m *model.Movie) error {
	var rating sql.NullFloat64
	var desc, gdesc sql.NullString
	g := new(model.Genre)
	if err := row.Scan(&m.ID, &m.Title, &m.GenreID, &m.TicketPrice, &m.DurationMinutes, &m.ReleaseYear, &rating, &desc, &g.Title, &gdesc); err != nil {
		return err
	}
	if rating.Valid {
		v := rating.Float64
		m.Rating = &v
	}
	m.Description = desc.String
	g.ID = m.GenreID
	g.Description = gdesc.String
	m.Genre = g
	return nil
}
