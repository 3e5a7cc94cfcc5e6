package repository

import (
	"context"
	"errors"
	"testing"

	"movienight/internal/model"
)

func TestMovieRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepo(db)

	tagline := "Your mind is the scene of the crime."
	cover := "https://example.com/inception.jpg"
	year := 2010
	dur := 148
	tmdb := int64(27205)
	m := model.Movie{
		Name:              "Inception",
		Tagline:           &tagline,
		CoverURL:          &cover,
		YearOfPublication: &year,
		DurationMin:       &dur,
		TMDBID:            &tmdb,
	}
	if err := repo.Create(context.Background(), &m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.ID == "" {
		t.Fatal("expected Create to assign an id")
	}

	got, err := repo.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Inception" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Tagline == nil || *got.Tagline != tagline {
		t.Errorf("tagline: got %v", got.Tagline)
	}
	if got.YearOfPublication == nil || *got.YearOfPublication != year {
		t.Errorf("year: got %v", got.YearOfPublication)
	}
	if got.TMDBID == nil || *got.TMDBID != tmdb {
		t.Errorf("tmdb id: got %v", got.TMDBID)
	}
	if got.Description != nil {
		t.Errorf("expected absent description to stay nil, got %v", got.Description)
	}
}

func TestMovieGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewMovieRepo(db).GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

func TestMovieListFilterAndPaging(t *testing.T) {
	db := newTestDB(t)
	repo := NewMovieRepo(db)
	for _, name := range []string{"Alien", "Aliens", "Blade Runner", "alien: covenant"} {
		seedMovie(t, db, name)
	}

	got, err := repo.List(context.Background(), "alien", 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 case-insensitive matches, got %d", len(got))
	}

	// Second page of one.
	got, err = repo.List(context.Background(), "alien", 1, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected a single row on page two, got %d", len(got))
	}

	all, err := repo.List(context.Background(), "", 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected all 4 movies without a filter, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Fatalf("expected name order, got %q before %q", all[i-1].Name, all[i].Name)
		}
	}
}
