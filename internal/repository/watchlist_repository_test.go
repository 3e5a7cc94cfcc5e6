package repository

import (
	"context"
	"errors"
	"testing"

	"movienight/internal/model"
)

func TestAddEntryAutoIndexStartsAtZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepo(db)
	w := model.Watchlist{Name: "Weekend"}
	if err := repo.Create(context.Background(), &w); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	a := seedMovie(t, db, "Movie A")
	b := seedMovie(t, db, "Movie B")

	idx, err := repo.AddEntry(context.Background(), w.ID, a.ID, nil)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected first auto index 0, got %d", idx)
	}

	idx, err = repo.AddEntry(context.Background(), w.ID, b.ID, nil)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected second auto index 1, got %d", idx)
	}
}

func TestAddEntryAutoIndexFollowsExplicitMax(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepo(db)
	w := model.Watchlist{Name: "Weekend"}
	if err := repo.Create(context.Background(), &w); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	a := seedMovie(t, db, "Movie A")
	b := seedMovie(t, db, "Movie B")

	five := 5
	if _, err := repo.AddEntry(context.Background(), w.ID, a.ID, &five); err != nil {
		t.Fatalf("explicit AddEntry failed: %v", err)
	}
	idx, err := repo.AddEntry(context.Background(), w.ID, b.ID, nil)
	if err != nil {
		t.Fatalf("auto AddEntry failed: %v", err)
	}
	if idx != 6 {
		t.Errorf("expected auto index max+1 (6), got %d", idx)
	}
}

func TestAddEntryExplicitIndexCollision(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepo(db)
	w := model.Watchlist{Name: "Weekend"}
	if err := repo.Create(context.Background(), &w); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	a := seedMovie(t, db, "Movie A")
	b := seedMovie(t, db, "Movie B")

	zero := 0
	if _, err := repo.AddEntry(context.Background(), w.ID, a.ID, &zero); err != nil {
		t.Fatalf("first AddEntry failed: %v", err)
	}
	_, err := repo.AddEntry(context.Background(), w.ID, b.ID, &zero)
	if err == nil {
		t.Fatal("expected collision on occupied index")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected a unique-key violation, got: %v", err)
	}
	if IsForeignKeyViolation(err) {
		t.Errorf("collision misclassified as a foreign-key violation: %v", err)
	}
}

func TestAddEntryUnknownMovieIsForeignKeyViolation(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepo(db)
	w := model.Watchlist{Name: "Weekend"}
	if err := repo.Create(context.Background(), &w); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	zero := 0
	_, err := repo.AddEntry(context.Background(), w.ID, "no-such-movie", &zero)
	if err == nil {
		t.Fatal("expected failure for unknown movie")
	}
	if !IsForeignKeyViolation(err) {
		t.Errorf("expected a foreign-key violation, got: %v", err)
	}
	if IsUniqueViolation(err) {
		t.Errorf("missing parent misclassified as a unique-key violation: %v", err)
	}
}

func TestRemoveEntrySpecificity(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepo(db)
	w := model.Watchlist{Name: "Weekend"}
	if err := repo.Create(context.Background(), &w); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	a := seedMovie(t, db, "Movie A")
	b := seedMovie(t, db, "Movie B")
	ctx := context.Background()

	if _, err := repo.AddEntry(ctx, w.ID, a.ID, nil); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if _, err := repo.AddEntry(ctx, w.ID, b.ID, nil); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	if err := repo.RemoveEntry(ctx, w.ID, 0); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	if n := countRows(t, db, "watchlist_entries", "watchlist_id = ?", w.ID); n != 1 {
		t.Fatalf("expected exactly one remaining entry, got %d", n)
	}

	// Removing the same position again finds nothing and mutates nothing.
	if err := repo.RemoveEntry(ctx, w.ID, 0); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if n := countRows(t, db, "watchlist_entries", "watchlist_id = ?", w.ID); n != 1 {
		t.Fatalf("expected the remaining entry untouched, got %d rows", n)
	}
}

// The end-to-end scenario: add two auto-indexed movies, remove the
// first, and check that the survivor keeps its index rather than being
// recompacted to 0.
func TestWatchlistOrderingEndToEnd(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepo(db)
	w := model.Watchlist{Name: "Weekend"}
	if err := repo.Create(context.Background(), &w); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	a := seedMovie(t, db, "Movie A")
	b := seedMovie(t, db, "Movie B")
	ctx := context.Background()

	if idx, err := repo.AddEntry(ctx, w.ID, a.ID, nil); err != nil || idx != 0 {
		t.Fatalf("expected Movie A at index 0, got %d (%v)", idx, err)
	}
	if idx, err := repo.AddEntry(ctx, w.ID, b.ID, nil); err != nil || idx != 1 {
		t.Fatalf("expected Movie B at index 1, got %d (%v)", idx, err)
	}
	if err := repo.RemoveEntry(ctx, w.ID, 0); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}

	entries, err := repo.ListEntries(ctx, w.ID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single entry, got %d", len(entries))
	}
	if entries[0].Idx != 1 {
		t.Errorf("expected surviving entry to keep index 1, got %d", entries[0].Idx)
	}
	if entries[0].Movie.ID != b.ID {
		t.Errorf("expected Movie B to survive, got %s", entries[0].Movie.ID)
	}
}

func TestWatchlistGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewWatchlistRepo(db).GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrWatchlistNotFound) {
		t.Fatalf("expected ErrWatchlistNotFound, got %v", err)
	}
}

func TestWatchlistRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewWatchlistRepo(db)
	owner := seedPerson(t, db, "Alice")
	desc := "for lazy sundays"
	w := model.Watchlist{Name: "Weekend", Description: &desc, OwnerID: &owner.ID}
	if err := repo.Create(context.Background(), &w); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(context.Background(), w.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Weekend" {
		t.Errorf("expected name to persist, got %q", got.Name)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("expected description to persist, got %v", got.Description)
	}
	if got.OwnerID == nil || *got.OwnerID != owner.ID {
		t.Errorf("expected owner to persist, got %v", got.OwnerID)
	}
}
