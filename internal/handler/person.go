package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"movienight/internal/model"
	"movienight/internal/repository"
)

// latestNightsLimit bounds how many recent nights a person's detail
// view returns.
const latestNightsLimit = 10

// PersonHandler exposes person creation, browsing and the per-person
// detail view with the most recent nights they attended.  Invalidate,
// when set, is called after a successful create so cached listings
// pick up the new person on the next read.
type PersonHandler struct {
	PersonRepo *repository.PersonRepo
	StatsRepo  *repository.StatsRepo
	Invalidate func(context.Context)
}

// NewPersonHandler constructs a PersonHandler.  All dependencies must
// be non-nil.
func NewPersonHandler(personRepo *repository.PersonRepo, statsRepo *repository.StatsRepo) *PersonHandler {
	if personRepo == nil || statsRepo == nil {
		panic("nil repository passed to NewPersonHandler")
	}
	return &PersonHandler{PersonRepo: personRepo, StatsRepo: statsRepo}
}

// CreatePerson handles POST /person.  The body must contain a
// non-empty name.  Returns 201 with the new person's id.
func (h *PersonHandler) CreatePerson(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	p := model.Person{Name: body.Name}
	if err := h.PersonRepo.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create person"})
	}
	if h.Invalidate != nil {
		h.Invalidate(c.Request().Context())
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": p.ID})
}

// personStub is one row of the GET /person listing.
type personStub struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListPersons handles GET /person with page/per_page paging and an
// optional ?name= substring filter.
func (h *PersonHandler) ListPersons(c echo.Context) error {
	limit, offset := parsePaging(c, 15)
	persons, err := h.PersonRepo.List(c.Request().Context(), c.QueryParam("name"), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list persons"})
	}
	stubs := make([]personStub, 0, len(persons))
	for _, p := range persons {
		stubs = append(stubs, personStub{ID: p.ID, Name: p.Name})
	}
	return c.JSON(http.StatusOK, stubs)
}

// personDetails is the response body of GET /person/:id.
type personDetails struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	LatestNights []repository.NightWithMovie `json:"latest_nights"`
}

// GetPersonDetails handles GET /person/:id.  It returns the person's
// fields plus their most recent nights (newest first, capped at
// latestNightsLimit), each annotated with the movie shown.  Responds
// 404 when the person does not exist.
func (h *PersonHandler) GetPersonDetails(c echo.Context) error {
	ctx := c.Request().Context()
	person, err := h.PersonRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPersonNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "person not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch person"})
	}
	nights, err := h.StatsRepo.PersonLatestNights(ctx, person.ID, latestNightsLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch latest nights"})
	}
	return c.JSON(http.StatusOK, personDetails{
		ID:           person.ID,
		Name:         person.Name,
		LatestNights: nights,
	})
}
