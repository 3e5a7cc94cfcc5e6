package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"movienight/internal/model"
	"movienight/internal/repository"
)

// MovieHandler exposes movie creation, browsing and the aggregated
// detail view.  It needs the movie repository for the flat records and
// the stats repository for the rating averages shown on the detail
// page.  Invalidate, when set, is called after a successful create so
// cached listings pick up the new movie on the next read.
type MovieHandler struct {
	MovieRepo  *repository.MovieRepo
	StatsRepo  *repository.StatsRepo
	Invalidate func(context.Context)
}

// NewMovieHandler constructs a MovieHandler.  All dependencies must be
// non-nil.
func NewMovieHandler(movieRepo *repository.MovieRepo, statsRepo *repository.StatsRepo) *MovieHandler {
	if movieRepo == nil || statsRepo == nil {
		panic("nil repository passed to NewMovieHandler")
	}
	return &MovieHandler{MovieRepo: movieRepo, StatsRepo: statsRepo}
}

// movieDetails is the response body of GET /movie/:id.  Nil pointers
// render as JSON null, which is how "no ratings yet" is reported.
type movieDetails struct {
	ID                string                    `json:"id"`
	Name              string                    `json:"name"`
	Tagline           *string                   `json:"tagline"`
	CoverURL          *string                   `json:"coverUrl"`
	Description       *string                   `json:"description"`
	YearOfPublication *int                      `json:"yearOfPublication"`
	DurationMin       *int                      `json:"durationMin"`
	TMDBID            *int64                    `json:"tmdbId"`
	Nights            []repository.NightAverage `json:"nights"`
	AvgRating         *float64                  `json:"avgRating"`
}

// CreateMovie handles POST /movie.  The body must contain a non-empty
// name; all other metadata fields are optional.  Returns 201 with the
// new movie's id.
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	var body struct {
		Name              string  `json:"name"`
		Tagline           *string `json:"tagline"`
		CoverURL          *string `json:"coverUrl"`
		Description       *string `json:"description"`
		YearOfPublication *int    `json:"yearOfPublication"`
		DurationMin       *int    `json:"durationMin"`
		TMDBID            *int64  `json:"tmdbId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	m := model.Movie{
		Name:              body.Name,
		Tagline:           body.Tagline,
		CoverURL:          body.CoverURL,
		Description:       body.Description,
		YearOfPublication: body.YearOfPublication,
		DurationMin:       body.DurationMin,
		TMDBID:            body.TMDBID,
	}
	if err := h.MovieRepo.Create(c.Request().Context(), &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create movie"})
	}
	if h.Invalidate != nil {
		h.Invalidate(c.Request().Context())
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": m.ID})
}

// ListMovies handles GET /movie.  Supports page/per_page paging and an
// optional ?name= substring filter.  Returns an array of movie stubs.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	limit, offset := parsePaging(c, 10)
	movies, err := h.MovieRepo.List(c.Request().Context(), c.QueryParam("name"), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list movies"})
	}
	stubs := make([]repository.MovieStub, 0, len(movies))
	for _, m := range movies {
		stubs = append(stubs, repository.MovieStub{ID: m.ID, Name: m.Name})
	}
	return c.JSON(http.StatusOK, stubs)
}

// GetMovieDetails handles GET /movie/:id.  It returns the movie's
// fields, one average per night the movie was shown, and the overall
// average across every rating.  A movie nobody has rated yet is a
// normal state: both averages come back null, never zero and never an
// error.  Responds 404 when the movie does not exist.
func (h *MovieHandler) GetMovieDetails(c echo.Context) error {
	ctx := c.Request().Context()
	movie, err := h.MovieRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch movie"})
	}
	nights, err := h.StatsRepo.MovieNightAverages(ctx, movie.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch night averages"})
	}
	avg, err := h.StatsRepo.MovieAverage(ctx, movie.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch movie average"})
	}
	return c.JSON(http.StatusOK, movieDetails{
		ID:                movie.ID,
		Name:              movie.Name,
		Tagline:           movie.Tagline,
		CoverURL:          movie.CoverURL,
		Description:       movie.Description,
		YearOfPublication: movie.YearOfPublication,
		DurationMin:       movie.DurationMin,
		TMDBID:            movie.TMDBID,
		Nights:            nights,
		AvgRating:         avg,
	})
}
