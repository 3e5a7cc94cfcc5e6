package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"movienight/internal/model"
)

// ErrNightNotFound indicates that a night was not located in the DB.
var ErrNightNotFound = errors.New("night not found")

// NightRepo records nights together with the movie views of everyone
// who took part.  The night row and its views are only ever written as
// one unit; readers never observe a night with some of its views
// missing.
type NightRepo struct {
	db *sql.DB
}

// NewNightRepo returns a new NightRepo bound to the given database.
func NewNightRepo(db *sql.DB) *NightRepo { return &NightRepo{db: db} }

// CreateWithViews inserts a night and one movie view per participant in
// a single transaction.  The night's id is assigned here and populated
// on the passed record.  On success it returns a map from each
// participant's person id to the id of their view, which callers use to
// submit ratings later.
//
// The view inserts run sequentially on the transaction handle: a *sql.Tx
// allows only one active statement, so the per-view inserts must not be
// issued concurrently even though they are logically independent.
// Participants and the movie are not pre-validated; a missing row shows
// up as a foreign-key violation from the store, the transaction is
// rolled back and nothing persists.
func (r *NightRepo) CreateWithViews(ctx context.Context, night *model.Night, movieID string, personIDs []string) (map[string]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin night transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if night.ID == "" {
		night.ID = uuid.NewString()
	}
	const nightQ = `INSERT INTO nights (id, time, description) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, nightQ, night.ID, night.Time, night.Description); err != nil {
		return nil, fmt.Errorf("insert night: %w", err)
	}

	const viewQ = `INSERT INTO movie_views (id, night_id, movie_id, person_id) VALUES (?, ?, ?, ?)`
	viewByPerson := make(map[string]string, len(personIDs))
	for _, personID := range personIDs {
		viewID := uuid.NewString()
		if _, err := tx.ExecContext(ctx, viewQ, viewID, night.ID, movieID, personID); err != nil {
			return nil, fmt.Errorf("insert view for person %s: %w", personID, err)
		}
		viewByPerson[personID] = viewID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit night transaction: %w", err)
	}
	committed = true
	return viewByPerson, nil
}

// GetWithMovie retrieves a night together with a stub of the movie that
// was shown.  The movie is resolved through the night's views; nights
// are always created with at least one view, so a night without one
// would not have been written by this service.  Returns ErrNightNotFound
// when no night with that id exists.
func (r *NightRepo) GetWithMovie(ctx context.Context, id string) (*model.Night, *model.Movie, error) {
	const q = `SELECT nights.id, nights.time, nights.description, movies.id, movies.name
		FROM nights
		JOIN movie_views ON movie_views.night_id = nights.id
		JOIN movies ON movies.id = movie_views.movie_id
		WHERE nights.id = ?
		LIMIT 1`
	var n model.Night
	var m model.Movie
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&n.ID, &n.Time, &description, &m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNightNotFound
		}
		return nil, nil, err
	}
	if description.Valid {
		v := description.String
		n.Description = &v
	}
	return &n, &m, nil
}
