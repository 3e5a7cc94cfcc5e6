package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"movienight/internal/model"
)

// RatingRepo inserts ratings against existing movie views.  A view may
// collect any number of ratings; resubmission is additive, never an
// update.  The view id is not pre-checked: a rating for a view that
// does not exist fails with a foreign-key violation from the store,
// which callers can classify with IsConstraintViolation.
type RatingRepo struct {
	db *sql.DB
}

// NewRatingRepo returns a new RatingRepo bound to the given database.
func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// Create inserts exactly one rating row and assigns it a random UUID
// when the caller has not provided one.  Single statement, so no
// transaction is needed.
func (r *RatingRepo) Create(ctx context.Context, rating *model.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}
	const q = `INSERT INTO ratings (id, movie_view_id, value, time) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, rating.ID, rating.MovieViewID, rating.Value, rating.Time)
	return err
}
