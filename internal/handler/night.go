package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"movienight/internal/model"
	"movienight/internal/queue"
	"movienight/internal/repository"
	queue_publisher "movienight/internal/service"
)

// NightHandler records nights and serves the per-night detail view.
// Invalidate, when set, is called after a successful write so cached
// aggregate responses do not outlive the data they were computed from.
type NightHandler struct {
	NightRepo  *repository.NightRepo
	StatsRepo  *repository.StatsRepo
	Invalidate func(context.Context)
}

// NewNightHandler constructs a NightHandler.  Repositories must be
// non-nil; Invalidate may be left nil when no response cache is wired.
func NewNightHandler(nightRepo *repository.NightRepo, statsRepo *repository.StatsRepo) *NightHandler {
	if nightRepo == nil || statsRepo == nil {
		panic("nil repository passed to NewNightHandler")
	}
	return &NightHandler{NightRepo: nightRepo, StatsRepo: statsRepo}
}

// CreateNight handles POST /night.  The body names the movie, the
// participating persons and optionally a time and description; the
// time defaults to now.  The night and one view per participant are
// written in a single transaction, so either all of it persists or
// none of it does.  On success it returns 201 with a map from person
// id to the view id that person will rate with.
//
// At least one participant is required: a night with no views would
// have no movie and nothing to rate.
func (h *NightHandler) CreateNight(c echo.Context) error {
	var body struct {
		Movie       string    `json:"movie"`
		Persons     []string  `json:"persons"`
		Time        time.Time `json:"time"`
		Description *string   `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Movie == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie is required"})
	}
	if len(body.Persons) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one person is required"})
	}
	when := body.Time
	if when.IsZero() {
		when = time.Now().UTC()
	}

	night := model.Night{Time: when, Description: body.Description}
	viewByPerson, err := h.NightRepo.CreateWithViews(c.Request().Context(), &night, body.Movie, body.Persons)
	if err != nil {
		if repository.IsConstraintViolation(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown movie or person id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record night"})
	}

	if h.Invalidate != nil {
		h.Invalidate(c.Request().Context())
	}
	// Publish after commit; a broker outage must not fail the request.
	ev := queue.NightRecordedEvent{
		NightID:      night.ID,
		MovieID:      body.Movie,
		Time:         night.Time.UTC().Format(time.RFC3339),
		Participants: len(body.Persons),
	}
	go func() { _ = queue_publisher.PublishNightRecorded(context.Background(), ev) }()

	return c.JSON(http.StatusCreated, viewByPerson)
}

// nightDetails is the response body of GET /night/:id.
type nightDetails struct {
	ID          string                     `json:"id"`
	Description *string                    `json:"description"`
	Time        time.Time                  `json:"time"`
	Movie       repository.MovieStub       `json:"movie"`
	Persons     []repository.PersonAverage `json:"persons"`
}

// GetNightDetails handles GET /night/:id.  It returns the night's
// fields, the movie that was shown and a per-person breakdown of the
// ratings given that night.  The breakdown joins through ratings, so a
// participant who has not rated yet does not appear in it.  Responds
// 404 when the night does not exist.
func (h *NightHandler) GetNightDetails(c echo.Context) error {
	ctx := c.Request().Context()
	night, movie, err := h.NightRepo.GetWithMovie(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "night not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch night"})
	}
	persons, err := h.StatsRepo.NightPersonBreakdown(ctx, night.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch rating breakdown"})
	}
	return c.JSON(http.StatusOK, nightDetails{
		ID:          night.ID,
		Description: night.Description,
		Time:        night.Time,
		Movie:       repository.MovieStub{ID: movie.ID, Name: movie.Name},
		Persons:     persons,
	})
}
