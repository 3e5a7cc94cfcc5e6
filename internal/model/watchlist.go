package model

// Watchlist is a named, ordered list of movies to watch.  Ordering is
// carried by the integer index on each entry; indices are not
// recompacted after removals, so gaps are normal.
//
// Fields:
//  ID          – primary key (UUID string).
//  Name        – display name.
//  Description – free-form note, if any.
//  OwnerID     – person who owns the list, when attributed.
type Watchlist struct {
	ID          string  // watchlists.id
	Name        string  // watchlists.name
	Description *string // watchlists.description (nullable)
	OwnerID     *string // watchlists.owner_id (nullable)
}

// WatchlistEntry places a movie at an integer position within a
// watchlist.  (WatchlistID, Idx) is unique per list; the index is the
// caller-visible ordering position.
//
// Fields:
//  ID          – primary key (UUID string).
//  WatchlistID – owning watchlist.
//  MovieID     – the listed movie.
//  Idx         – ordering position within the list.
type WatchlistEntry struct {
	ID          string // watchlist_entries.id
	WatchlistID string // watchlist_entries.watchlist_id
	MovieID     string // watchlist_entries.movie_id
	Idx         int    // watchlist_entries.idx
}
