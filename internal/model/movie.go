package model

// Movie is a film that can be shown on a night or placed on a
// watchlist.  Identity is immutable; all metadata beyond the name
// is optional and may be filled in later from an external import.
//
// Fields:
//  ID                – primary key (UUID string).
//  Name              – display title.
//  Tagline           – marketing tagline, if known.
//  CoverURL          – poster image reference.
//  Description       – synopsis.
//  YearOfPublication – release year.
//  DurationMin       – runtime in minutes.
//  TMDBID            – external import reference (The Movie Database id).
type Movie struct {
	ID                string  // movies.id
	Name              string  // movies.name
	Tagline           *string // movies.tagline (nullable)
	CoverURL          *string // movies.cover_url (nullable)
	Description       *string // movies.description (nullable)
	YearOfPublication *int    // movies.year_of_publication (nullable)
	DurationMin       *int    // movies.duration_min (nullable)
	TMDBID            *int64  // movies.tmdb_id (nullable)
}
