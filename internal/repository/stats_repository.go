package repository

import (
	"context"
	"database/sql"
	"time"
)

// StatsRepo computes average-rating aggregates by walking the
// rating -> view -> night/movie/person joins.  All queries are
// read-only and group over every rating reachable from the target
// entity; multiple ratings on one view all count, with no
// de-duplication.  Averages are plain arithmetic means over DOUBLE
// values.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo returns a new StatsRepo bound to the given database.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// MovieStub carries just enough of a movie to label an aggregate row.
type MovieStub struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NightAverage is one night a movie was shown, with the average of all
// ratings given during that night.  AvgRating is nil when the night has
// no ratings yet.
type NightAverage struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	AvgRating *float64  `json:"avgRating"`
}

// PersonAverage is one participant of a night with the average and
// count of the ratings they gave that night.
type PersonAverage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AvgRating   *float64 `json:"avgRating"`
	RatingCount int64    `json:"ratingCount"`
}

// NightWithMovie is a night stub annotated with the movie that was
// shown, used for a person's recent-nights listing.
type NightWithMovie struct {
	ID    string    `json:"id"`
	Time  time.Time `json:"time"`
	Movie MovieStub `json:"movie"`
}

// MovieNightAverages returns, for every night the movie was shown, the
// average of all ratings from that night.  The ratings join is a LEFT
// JOIN so unrated nights still appear, with a nil average.
func (r *StatsRepo) MovieNightAverages(ctx context.Context, movieID string) ([]NightAverage, error) {
	const q = `SELECT nights.id, nights.time, AVG(ratings.value)
		FROM nights
		JOIN movie_views ON movie_views.night_id = nights.id
		LEFT JOIN ratings ON ratings.movie_view_id = movie_views.id
		WHERE movie_views.movie_id = ?
		GROUP BY nights.id, nights.time
		ORDER BY nights.time DESC`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]NightAverage, 0)
	for rows.Next() {
		var n NightAverage
		var avg sql.NullFloat64
		if err := rows.Scan(&n.ID, &n.Time, &avg); err != nil {
			return nil, err
		}
		if avg.Valid {
			v := avg.Float64
			n.AvgRating = &v
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MovieAverage returns the mean of every rating ever given to the
// movie, across all views of all nights.  A movie with no ratings is a
// valid state and yields nil, not zero and not an error.
func (r *StatsRepo) MovieAverage(ctx context.Context, movieID string) (*float64, error) {
	const q = `SELECT AVG(ratings.value)
		FROM ratings
		JOIN movie_views ON ratings.movie_view_id = movie_views.id
		WHERE movie_views.movie_id = ?`
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, q, movieID).Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	v := avg.Float64
	return &v, nil
}

// NightPersonBreakdown returns, for each person who rated during the
// night, the average and count of their ratings.  The join through
// ratings is an inner join, so a participant who has not rated yet is
// omitted from the breakdown.
func (r *StatsRepo) NightPersonBreakdown(ctx context.Context, nightID string) ([]PersonAverage, error) {
	const q = `SELECT persons.id, persons.name, AVG(ratings.value), COUNT(ratings.id)
		FROM movie_views
		JOIN persons ON persons.id = movie_views.person_id
		JOIN ratings ON ratings.movie_view_id = movie_views.id
		WHERE movie_views.night_id = ?
		GROUP BY persons.id, persons.name`
	rows, err := r.db.QueryContext(ctx, q, nightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]PersonAverage, 0)
	for rows.Next() {
		var p PersonAverage
		var avg sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Name, &avg, &p.RatingCount); err != nil {
			return nil, err
		}
		if avg.Valid {
			v := avg.Float64
			p.AvgRating = &v
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PersonLatestNights returns the most recent nights the person took
// part in, newest first, each annotated with the movie shown.
func (r *StatsRepo) PersonLatestNights(ctx context.Context, personID string, limit int) ([]NightWithMovie, error) {
	const q = `SELECT nights.id, nights.time, movies.id, movies.name
		FROM movie_views
		JOIN nights ON movie_views.night_id = nights.id
		JOIN movies ON movies.id = movie_views.movie_id
		WHERE movie_views.person_id = ?
		ORDER BY nights.time DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, personID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]NightWithMovie, 0, limit)
	for rows.Next() {
		var n NightWithMovie
		if err := rows.Scan(&n.ID, &n.Time, &n.Movie.ID, &n.Movie.Name); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
