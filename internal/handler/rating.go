package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"movienight/internal/model"
	"movienight/internal/repository"
)

// Ratings are scored on a fixed 0..10 scale.  The store itself does not
// constrain the value, so the bounds are enforced here before anything
// is written.
const (
	minRatingValue = 0
	maxRatingValue = 10
)

// RatingHandler records ratings against existing movie views.
type RatingHandler struct {
	RatingRepo *repository.RatingRepo
	Invalidate func(context.Context)
}

// NewRatingHandler constructs a RatingHandler.  The repository must be
// non-nil; Invalidate may be left nil when no response cache is wired.
func NewRatingHandler(ratingRepo *repository.RatingRepo) *RatingHandler {
	if ratingRepo == nil {
		panic("nil repository passed to NewRatingHandler")
	}
	return &RatingHandler{RatingRepo: ratingRepo}
}

// CreateRating handles POST /rating.  The body carries the view id,
// the value and optionally a timestamp (defaults to now).  Submitting
// a second rating for the same view is legal and counts toward the
// averages alongside the first.  Returns 201 with the rating id as a
// plain string; 400 when the value is outside 0..10 or the view does
// not exist.
func (h *RatingHandler) CreateRating(c echo.Context) error {
	var body struct {
		ViewID string    `json:"viewId"`
		Value  float64   `json:"value"`
		Time   time.Time `json:"time"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ViewID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "viewId is required"})
	}
	if body.Value < minRatingValue || body.Value > maxRatingValue {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value must be between 0 and 10"})
	}
	when := body.Time
	if when.IsZero() {
		when = time.Now().UTC()
	}

	rating := model.Rating{MovieViewID: body.ViewID, Value: body.Value, Time: when}
	if err := h.RatingRepo.Create(c.Request().Context(), &rating); err != nil {
		if repository.IsConstraintViolation(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown view id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record rating"})
	}
	if h.Invalidate != nil {
		h.Invalidate(c.Request().Context())
	}
	return c.String(http.StatusCreated, rating.ID)
}
