package model

import "time"

// Rating is a numeric score attached to a movie view.  A view may
// carry any number of ratings; a later second rating ("hangover
// rating") is legal and counts toward all averages.  Ratings are
// never updated or deleted.
//
// Fields:
//  ID          – primary key (UUID string).
//  MovieViewID – owning view.
//  Value       – score on the 0..10 scale.
//  Time        – when the rating was given, UTC.
type Rating struct {
	ID          string    // ratings.id
	MovieViewID string    // ratings.movie_view_id
	Value       float64   // ratings.value
	Time        time.Time // ratings.time
}
