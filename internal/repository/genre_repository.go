package repository

import (
	"context"
	"database/sql"
	"errors"

	"cinema-management/internal/model"
)

// ErrGenreNotFound is returned when a genre cannot be found in the DB.
var ErrGenreNotFound = errors.New("genre not found")

// GenreRepo encapsulates all database queries related to genres.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo constructs a GenreRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewGenreRepo(db *sql.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories.
func (r *GenreRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new genre and assigns the generated ID back to the
// struct.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	const q = `INSERT INTO genres (title, description) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.Title, nullIfEmpty(g.Description))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// Update rewrites title and description for an existing genre. MySQL
// reports zero affected rows both for a missing id and for an update
// that changes nothing, so a follow-up existence check separates the
// two cases.
func (r *GenreRepo) Update(ctx context.Context, g *model.Genre) error {
	const q = `UPDATE genres SET title = ?, description = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, g.Title, nullIfEmpty(g.Description), g.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM genres WHERE id = ?`, g.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil // row exists, values were already identical
}

// GetByID fetches a genre by its ID. It returns ErrGenreNotFound if no
// row is found.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (*model.Genre, error) {
	const q = `SELECT id, title, description FROM genres WHERE id = ?`
	var g model.Genre
	var desc sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Title, &desc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	g.Description = desc.String
	return &g, nil
}

// ListAll returns every genre ordered alphabetically by title. When no
// genres exist it returns an empty slice and nil error.
func (r *GenreRepo) ListAll(ctx context.Context) ([]*model.Genre, error) {
	const q = `SELECT id, title, description FROM genres ORDER BY title ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Genre
	for rows.Next() {
		g := new(model.Genre)
		var desc sql.NullString
		if err := rows.Scan(&g.ID, &g.Title, &desc); err != nil {
			return nil, err
		}
		g.Description = desc.String
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsByTitle reports whether a genre with exactly this title exists.
// BINARY forces a case-sensitive match regardless of column collation.
func (r *GenreRepo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM genres WHERE BINARY title = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, title).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// DeleteIfUnused removes a genre only when no movie references it. The
// lookup, the dependency check and the delete run in one transaction so
// a movie inserted concurrently cannot slip between the check and the
// delete. Returns ErrGenreNotFound when the genre does not exist and
// ErrGenreInUse when movies still reference it; in both cases nothing
// is deleted.
func (r *GenreRepo) DeleteIfUnused(ctx context.Context, id uint64) error {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM genres WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrGenreNotFound
		}
		return err
	}
	var movies int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies WHERE genre_id = ?`, id).Scan(&movies); err != nil {
		return err
	}
	if movies > 0 {
		err = ErrGenreInUse
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id)
	return err
}

// nullIfEmpty maps an empty string to SQL NULL for optional columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
