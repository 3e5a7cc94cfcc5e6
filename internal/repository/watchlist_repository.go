package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"movienight/internal/model"
)

// ErrWatchlistNotFound indicates that a watchlist was not located in the DB.
var ErrWatchlistNotFound = errors.New("watchlist not found")

// WatchlistRepo maintains watchlists and the integer ordering of their
// entries.  Indices are caller-visible positions; they stay put when an
// entry is removed, so a list may legitimately have gaps.
type WatchlistRepo struct {
	db *sql.DB
}

// NewWatchlistRepo returns a new WatchlistRepo bound to the given database.
func NewWatchlistRepo(db *sql.DB) *WatchlistRepo { return &WatchlistRepo{db: db} }

// Create inserts a new watchlist, assigning a random UUID when the
// caller has not provided one.
func (r *WatchlistRepo) Create(ctx context.Context, w *model.Watchlist) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	const q = `INSERT INTO watchlists (id, name, description, owner_id) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, w.ID, w.Name, w.Description, w.OwnerID)
	return err
}

// GetByID retrieves a watchlist by its ID.  It returns
// ErrWatchlistNotFound if no watchlist with that id exists.
func (r *WatchlistRepo) GetByID(ctx context.Context, id string) (*model.Watchlist, error) {
	const q = `SELECT id, name, description, owner_id FROM watchlists WHERE id = ?`
	var w model.Watchlist
	var description, ownerID sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&w.ID, &w.Name, &description, &ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWatchlistNotFound
		}
		return nil, err
	}
	if description.Valid {
		v := description.String
		w.Description = &v
	}
	if ownerID.Valid {
		v := ownerID.String
		w.OwnerID = &v
	}
	return &w, nil
}

// AddEntry places a movie on a watchlist and returns the index it was
// assigned.  When idx is non-nil the entry is inserted at exactly that
// position; the UNIQUE (watchlist_id, idx) constraint rejects a
// collision with an existing entry.  When idx is nil the next free
// position is current-max + 1 (0 for an empty list), computed and
// inserted in a single statement so two concurrent auto-assignments
// cannot read the same max.
func (r *WatchlistRepo) AddEntry(ctx context.Context, watchlistID, movieID string, idx *int) (int, error) {
	entryID := uuid.NewString()
	if idx != nil {
		const q = `INSERT INTO watchlist_entries (id, watchlist_id, movie_id, idx) VALUES (?, ?, ?, ?)`
		if _, err := r.db.ExecContext(ctx, q, entryID, watchlistID, movieID, *idx); err != nil {
			return 0, err
		}
		return *idx, nil
	}
	const autoQ = `INSERT INTO watchlist_entries (id, watchlist_id, movie_id, idx)
		SELECT ?, ?, ?, COALESCE(MAX(idx) + 1, 0)
		FROM watchlist_entries WHERE watchlist_id = ?`
	if _, err := r.db.ExecContext(ctx, autoQ, entryID, watchlistID, movieID, watchlistID); err != nil {
		return 0, err
	}
	// Entries are immutable, so reading the assigned position back by
	// primary key is race-free.
	const readQ = `SELECT idx FROM watchlist_entries WHERE id = ?`
	var assigned int
	if err := r.db.QueryRowContext(ctx, readQ, entryID).Scan(&assigned); err != nil {
		return 0, fmt.Errorf("read back assigned index: %w", err)
	}
	return assigned, nil
}

// RemoveEntry deletes the entry at the given position of a watchlist.
// It returns ErrEntryNotFound when no entry sits at that position and
// ErrConsistency when more than one row matched, which the unique
// constraint should make impossible.
func (r *WatchlistRepo) RemoveEntry(ctx context.Context, watchlistID string, idx int) error {
	const q = `DELETE FROM watchlist_entries WHERE watchlist_id = ? AND idx = ?`
	res, err := r.db.ExecContext(ctx, q, watchlistID, idx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	switch {
	case n == 0:
		return ErrEntryNotFound
	case n > 1:
		return fmt.Errorf("%w: delete of (%s, %d) affected %d rows", ErrConsistency, watchlistID, idx, n)
	}
	return nil
}

// EntryWithMovie is one ordered watchlist position with its movie.
type EntryWithMovie struct {
	Idx   int       `json:"index"`
	Movie MovieStub `json:"movie"`
}

// ListEntries returns the entries of a watchlist in index order, each
// joined with a stub of its movie.
func (r *WatchlistRepo) ListEntries(ctx context.Context, watchlistID string) ([]EntryWithMovie, error) {
	const q = `SELECT watchlist_entries.idx, movies.id, movies.name
		FROM watchlist_entries
		JOIN movies ON movies.id = watchlist_entries.movie_id
		WHERE watchlist_entries.watchlist_id = ?
		ORDER BY watchlist_entries.idx`
	rows, err := r.db.QueryContext(ctx, q, watchlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]EntryWithMovie, 0)
	for rows.Next() {
		var e EntryWithMovie
		if err := rows.Scan(&e.Idx, &e.Movie.ID, &e.Movie.Name); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
