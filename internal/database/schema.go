package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the table definitions for the service.  The DDL sticks to
// the dialect subset shared by MySQL and SQLite so the same statements
// bootstrap the production database and the in-process test store.
// Entity ids are 128-bit random UUIDs stored as CHAR(36) strings.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		tagline VARCHAR(255),
		cover_url VARCHAR(512),
		description TEXT,
		year_of_publication INT,
		duration_min INT,
		tmdb_id BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS persons (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS nights (
		id CHAR(36) PRIMARY KEY,
		time DATETIME NOT NULL,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS movie_views (
		id CHAR(36) PRIMARY KEY,
		night_id CHAR(36) NOT NULL,
		movie_id CHAR(36) NOT NULL,
		person_id CHAR(36) NOT NULL,
		FOREIGN KEY (night_id) REFERENCES nights(id),
		FOREIGN KEY (movie_id) REFERENCES movies(id),
		FOREIGN KEY (person_id) REFERENCES persons(id)
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id CHAR(36) PRIMARY KEY,
		movie_view_id CHAR(36) NOT NULL,
		value DOUBLE NOT NULL,
		time DATETIME NOT NULL,
		FOREIGN KEY (movie_view_id) REFERENCES movie_views(id)
	)`,
	`CREATE TABLE IF NOT EXISTS watchlists (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		owner_id CHAR(36),
		FOREIGN KEY (owner_id) REFERENCES persons(id)
	)`,
	// UNIQUE (watchlist_id, idx) is the store-level guard against two
	// entries landing on the same position, whether from a caller-supplied
	// index or from racing auto-assignments.
	`CREATE TABLE IF NOT EXISTS watchlist_entries (
		id CHAR(36) PRIMARY KEY,
		watchlist_id CHAR(36) NOT NULL,
		movie_id CHAR(36) NOT NULL,
		idx INT NOT NULL,
		FOREIGN KEY (watchlist_id) REFERENCES watchlists(id),
		FOREIGN KEY (movie_id) REFERENCES movies(id),
		UNIQUE (watchlist_id, idx)
	)`,
}

// Migrate creates any missing tables.  Statements are idempotent so the
// function is safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
