package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"movienight/internal/model"
)

// ErrMovieNotFound indicates that a movie was not located in the DB.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo provides read and insert operations for movies.  Movies are
// immutable once created; there is no update or delete path.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo returns a new MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// Create inserts a new movie and assigns it a random UUID when the
// caller has not provided one.  The generated id is populated on the
// passed record.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	const q = `INSERT INTO movies
		(id, name, tagline, cover_url, description, year_of_publication, duration_min, tmdb_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.Name, m.Tagline, m.CoverURL, m.Description,
		m.YearOfPublication, m.DurationMin, m.TMDBID,
	)
	return err
}

// GetByID retrieves a movie by its ID.  It returns ErrMovieNotFound if
// no movie with that id exists.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	const q = `SELECT id, name, tagline, cover_url, description, year_of_publication, duration_min, tmdb_id
		FROM movies WHERE id = ?`
	var m model.Movie
	var tagline, coverURL, description sql.NullString
	var year, duration sql.NullInt64
	var tmdbID sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &tagline, &coverURL, &description, &year, &duration, &tmdbID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	if tagline.Valid {
		v := tagline.String
		m.Tagline = &v
	}
	if coverURL.Valid {
		v := coverURL.String
		m.CoverURL = &v
	}
	if description.Valid {
		v := description.String
		m.Description = &v
	}
	if year.Valid {
		v := int(year.Int64)
		m.YearOfPublication = &v
	}
	if duration.Valid {
		v := int(duration.Int64)
		m.DurationMin = &v
	}
	if tmdbID.Valid {
		v := tmdbID.Int64
		m.TMDBID = &v
	}
	return &m, nil
}

// Fixed query variants for listing.  Keeping both statements constant and
// fully parameterized avoids assembling WHERE clauses from strings; the
// branch in List picks the right one depending on whether a name filter
// was supplied.
const (
	listMoviesQ = `SELECT id, name FROM movies
		ORDER BY name LIMIT ? OFFSET ?`
	listMoviesByNameQ = `SELECT id, name FROM movies
		WHERE UPPER(name) LIKE ?
		ORDER BY name LIMIT ? OFFSET ?`
)

// List returns movie stubs (id and name) for browsing, ordered by name.
// When name is non-empty, only movies whose name contains it
// (case-insensitive) are returned.  Paging is plain limit/offset.
func (r *MovieRepo) List(ctx context.Context, name string, limit, offset int) ([]model.Movie, error) {
	var rows *sql.Rows
	var err error
	if name != "" {
		rows, err = r.db.QueryContext(ctx, listMoviesByNameQ, "%"+strings.ToUpper(name)+"%", limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, listMoviesQ, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Movie, 0, limit)
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
