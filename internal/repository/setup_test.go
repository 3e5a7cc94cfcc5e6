package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"movienight/internal/database"
	"movienight/internal/model"
)

// newTestDB creates an isolated SQLite database with the service schema
// and foreign keys enabled.  The production store is MySQL, but the
// schema and every query stick to the shared dialect subset, so the
// repositories run unmodified here.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedMovie(t *testing.T, db *sql.DB, name string) *model.Movie {
	t.Helper()
	m := model.Movie{Name: name}
	if err := NewMovieRepo(db).Create(context.Background(), &m); err != nil {
		t.Fatalf("failed to seed movie %q: %v", name, err)
	}
	return &m
}

func seedPerson(t *testing.T, db *sql.DB, name string) *model.Person {
	t.Helper()
	p := model.Person{Name: name}
	if err := NewPersonRepo(db).Create(context.Background(), &p); err != nil {
		t.Fatalf("failed to seed person %q: %v", name, err)
	}
	return &p
}

// seedNight records a night for the movie with the given participants
// and returns the person id -> view id map.
func seedNight(t *testing.T, db *sql.DB, movieID string, when time.Time, personIDs ...string) (*model.Night, map[string]string) {
	t.Helper()
	night := model.Night{Time: when}
	views, err := NewNightRepo(db).CreateWithViews(context.Background(), &night, movieID, personIDs)
	if err != nil {
		t.Fatalf("failed to seed night: %v", err)
	}
	return &night, views
}

func seedRating(t *testing.T, db *sql.DB, viewID string, value float64, when time.Time) *model.Rating {
	t.Helper()
	r := model.Rating{MovieViewID: viewID, Value: value, Time: when}
	if err := NewRatingRepo(db).Create(context.Background(), &r); err != nil {
		t.Fatalf("failed to seed rating: %v", err)
	}
	return &r
}

// countRows returns the number of rows in table matching the condition.
func countRows(t *testing.T, db *sql.DB, table, where string, args ...any) int {
	t.Helper()
	var n int
	q := "SELECT COUNT(*) FROM " + table + " WHERE " + where
	if err := db.QueryRow(q, args...).Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return n
}
