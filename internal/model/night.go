package model

import "time"

// Night is a single group movie-watching event.  A night groups the
// views that happened together; the night row and all of its views
// are created in one transaction and are never updated afterwards.
//
// Fields:
//  ID          – primary key (UUID string).
//  Time        – when the night took place, UTC.
//  Description – free-form note, if any.
type Night struct {
	ID          string    // nights.id
	Time        time.Time // nights.time
	Description *string   // nights.description (nullable)
}

// MovieView records that one person watched one movie as part of one
// night.  Each participant of a night gets their own view row, and
// ratings always attach to a view rather than to a movie or night
// directly.
//
// Fields:
//  ID       – primary key (UUID string).
//  NightID  – owning night.
//  MovieID  – movie that was watched.
//  PersonID – person who watched it.
type MovieView struct {
	ID       string // movie_views.id
	NightID  string // movie_views.night_id
	MovieID  string // movie_views.movie_id
	PersonID string // movie_views.person_id
}
