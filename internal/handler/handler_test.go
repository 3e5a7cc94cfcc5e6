package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"

	"movienight/internal/database"
	"movienight/internal/model"
	"movienight/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestCreateRatingRejectsOutOfRangeValue(t *testing.T) {
	db := newTestDB(t)
	h := NewRatingHandler(repository.NewRatingRepo(db))

	rec := doJSON(t, h.CreateRating, http.MethodPost, "/rating",
		`{"viewId": "some-view", "value": 11}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for value 11, got %d", rec.Code)
	}

	rec = doJSON(t, h.CreateRating, http.MethodPost, "/rating",
		`{"viewId": "some-view", "value": -0.5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for value -0.5, got %d", rec.Code)
	}
}

func TestCreateRatingRejectsUnknownView(t *testing.T) {
	db := newTestDB(t)
	h := NewRatingHandler(repository.NewRatingRepo(db))

	rec := doJSON(t, h.CreateRating, http.MethodPost, "/rating",
		`{"viewId": "no-such-view", "value": 7}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown view, got %d", rec.Code)
	}
}

func TestCreateNightRequiresParticipants(t *testing.T) {
	db := newTestDB(t)
	h := NewNightHandler(repository.NewNightRepo(db), repository.NewStatsRepo(db))

	rec := doJSON(t, h.CreateNight, http.MethodPost, "/night",
		`{"movie": "some-movie", "persons": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty persons, got %d", rec.Code)
	}
}

func TestCreateNightUnknownMovie(t *testing.T) {
	db := newTestDB(t)
	h := NewNightHandler(repository.NewNightRepo(db), repository.NewStatsRepo(db))
	p := model.Person{Name: "Alice"}
	if err := repository.NewPersonRepo(db).Create(context.Background(), &p); err != nil {
		t.Fatalf("seed person: %v", err)
	}

	rec := doJSON(t, h.CreateNight, http.MethodPost, "/night",
		`{"movie": "no-such-movie", "persons": ["`+p.ID+`"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown movie, got %d", rec.Code)
	}
}

func TestRecordNightAndRateFlow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m := model.Movie{Name: "Inception"}
	if err := repository.NewMovieRepo(db).Create(ctx, &m); err != nil {
		t.Fatalf("seed movie: %v", err)
	}
	p := model.Person{Name: "Alice"}
	if err := repository.NewPersonRepo(db).Create(ctx, &p); err != nil {
		t.Fatalf("seed person: %v", err)
	}

	nights := NewNightHandler(repository.NewNightRepo(db), repository.NewStatsRepo(db))
	rec := doJSON(t, nights.CreateNight, http.MethodPost, "/night",
		`{"movie": "`+m.ID+`", "persons": ["`+p.ID+`"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var viewByPerson map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &viewByPerson); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	viewID, ok := viewByPerson[p.ID]
	if !ok || viewID == "" {
		t.Fatalf("expected a view id for person %s, got %v", p.ID, viewByPerson)
	}

	ratings := NewRatingHandler(repository.NewRatingRepo(db))
	rec = doJSON(t, ratings.CreateRating, http.MethodPost, "/rating",
		`{"viewId": "`+viewID+`", "value": 8.5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected the rating id as the response body")
	}
}

func TestAddEntryExplicitIndexUnknownMovieIsBadRequest(t *testing.T) {
	db := newTestDB(t)
	h := NewWatchlistHandler(repository.NewWatchlistRepo(db))
	w := model.Watchlist{Name: "Weekend"}
	if err := repository.NewWatchlistRepo(db).Create(context.Background(), &w); err != nil {
		t.Fatalf("seed watchlist: %v", err)
	}

	// An explicit index on an empty list cannot collide; a failure here
	// is the missing movie, not an occupied position.
	rec := doJSON(t, h.AddEntry, http.MethodPost, "/watchlist/"+w.ID,
		`{"movie": "no-such-movie", "index": 0}`, "id", w.ID)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown movie, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddEntryExplicitIndexOccupiedIsConflict(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewWatchlistRepo(db)
	h := NewWatchlistHandler(repo)
	ctx := context.Background()
	w := model.Watchlist{Name: "Weekend"}
	if err := repo.Create(ctx, &w); err != nil {
		t.Fatalf("seed watchlist: %v", err)
	}
	a := model.Movie{Name: "Movie A"}
	b := model.Movie{Name: "Movie B"}
	movies := repository.NewMovieRepo(db)
	if err := movies.Create(ctx, &a); err != nil {
		t.Fatalf("seed movie: %v", err)
	}
	if err := movies.Create(ctx, &b); err != nil {
		t.Fatalf("seed movie: %v", err)
	}
	zero := 0
	if _, err := repo.AddEntry(ctx, w.ID, a.ID, &zero); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	rec := doJSON(t, h.AddEntry, http.MethodPost, "/watchlist/"+w.ID,
		`{"movie": "`+b.ID+`", "index": 0}`, "id", w.ID)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for occupied index, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListPersonsUsesLowercaseFields(t *testing.T) {
	db := newTestDB(t)
	h := NewPersonHandler(repository.NewPersonRepo(db), repository.NewStatsRepo(db))
	p := model.Person{Name: "Alice"}
	if err := repository.NewPersonRepo(db).Create(context.Background(), &p); err != nil {
		t.Fatalf("seed person: %v", err)
	}

	rec := doJSON(t, h.ListPersons, http.MethodGet, "/person", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0]["id"] != p.ID || rows[0]["name"] != "Alice" {
		t.Errorf("expected lowercase id/name keys, got %v", rows[0])
	}
	if _, ok := rows[0]["ID"]; ok {
		t.Error("response still carries an uppercase ID key")
	}
}

func TestCreateMovieAndPersonInvalidateCache(t *testing.T) {
	db := newTestDB(t)

	movies := NewMovieHandler(repository.NewMovieRepo(db), repository.NewStatsRepo(db))
	movieFlushes := 0
	movies.Invalidate = func(context.Context) { movieFlushes++ }
	rec := doJSON(t, movies.CreateMovie, http.MethodPost, "/movie", `{"name": "Inception"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if movieFlushes != 1 {
		t.Errorf("expected one cache flush after movie create, got %d", movieFlushes)
	}

	persons := NewPersonHandler(repository.NewPersonRepo(db), repository.NewStatsRepo(db))
	personFlushes := 0
	persons.Invalidate = func(context.Context) { personFlushes++ }
	rec = doJSON(t, persons.CreatePerson, http.MethodPost, "/person", `{"name": "Alice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if personFlushes != 1 {
		t.Errorf("expected one cache flush after person create, got %d", personFlushes)
	}
}

func TestGetMovieDetailsNotFound(t *testing.T) {
	db := newTestDB(t)
	h := NewMovieHandler(repository.NewMovieRepo(db), repository.NewStatsRepo(db))

	rec := doJSON(t, h.GetMovieDetails, http.MethodGet, "/movie/missing", "",
		"id", "missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetNightDetailsNotFound(t *testing.T) {
	db := newTestDB(t)
	h := NewNightHandler(repository.NewNightRepo(db), repository.NewStatsRepo(db))

	rec := doJSON(t, h.GetNightDetails, http.MethodGet, "/night/missing", "",
		"id", "missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
