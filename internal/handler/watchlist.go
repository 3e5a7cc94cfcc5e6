package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"movienight/internal/model"
	"movienight/internal/repository"
)

// WatchlistHandler exposes watchlist creation, the ordered listing and
// entry add/remove operations.
type WatchlistHandler struct {
	WatchlistRepo *repository.WatchlistRepo
	Invalidate    func(context.Context)
}

// NewWatchlistHandler constructs a WatchlistHandler.  The repository
// must be non-nil; Invalidate may be left nil when no response cache is
// wired.
func NewWatchlistHandler(watchlistRepo *repository.WatchlistRepo) *WatchlistHandler {
	if watchlistRepo == nil {
		panic("nil repository passed to NewWatchlistHandler")
	}
	return &WatchlistHandler{WatchlistRepo: watchlistRepo}
}

// CreateWatchlist handles POST /watchlist.  The body must contain a
// non-empty name and may carry a description and an owning person id.
// Returns 201 with the new watchlist's id as a plain string.
func (h *WatchlistHandler) CreateWatchlist(c echo.Context) error {
	var body struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Owner       *string `json:"owner"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	w := model.Watchlist{Name: body.Name, Description: body.Description, OwnerID: body.Owner}
	if err := h.WatchlistRepo.Create(c.Request().Context(), &w); err != nil {
		if repository.IsConstraintViolation(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown owner id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create watchlist"})
	}
	return c.String(http.StatusCreated, w.ID)
}

// watchlistDetails is the response body of GET /watchlist/:id.
type watchlistDetails struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	Description *string                     `json:"description"`
	Owner       *string                     `json:"owner"`
	Entries     []repository.EntryWithMovie `json:"entries"`
}

// GetWatchlist handles GET /watchlist/:id.  It returns the watchlist's
// fields and its entries in index order.  Indices are as assigned, not
// recompacted, so the sequence may have gaps after removals.  Responds
// 404 when the watchlist does not exist.
func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	ctx := c.Request().Context()
	w, err := h.WatchlistRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrWatchlistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "watchlist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch watchlist"})
	}
	entries, err := h.WatchlistRepo.ListEntries(ctx, w.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list entries"})
	}
	return c.JSON(http.StatusOK, watchlistDetails{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Owner:       w.OwnerID,
		Entries:     entries,
	})
}

// AddEntry handles POST /watchlist/:id.  The body names the movie and
// may pin an explicit index; without one the entry lands at
// current-max + 1 (0 for an empty list).  Returns 201 with the
// assigned index as a plain string; 409 when an explicit index is
// already taken; 400 when the watchlist or movie id is unknown.
func (h *WatchlistHandler) AddEntry(c echo.Context) error {
	var body struct {
		Movie string `json:"movie"`
		Index *int   `json:"index"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Movie == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie is required"})
	}
	idx, err := h.WatchlistRepo.AddEntry(c.Request().Context(), c.Param("id"), body.Movie, body.Index)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "index already occupied"})
		}
		if repository.IsForeignKeyViolation(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown watchlist or movie id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add entry"})
	}
	if h.Invalidate != nil {
		h.Invalidate(c.Request().Context())
	}
	return c.String(http.StatusCreated, strconv.Itoa(idx))
}

// RemoveEntry handles DELETE /watchlist/:id/:idx.  Removal matches the
// exact (watchlist, index) pair and must affect exactly one row: zero
// rows is a 404, more than one means the index-uniqueness invariant is
// broken and surfaces as a 500, never silently.
func (h *WatchlistHandler) RemoveEntry(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid index"})
	}
	err = h.WatchlistRepo.RemoveEntry(c.Request().Context(), c.Param("id"), idx)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		if errors.Is(err, repository.ErrConsistency) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal consistency error"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove entry"})
	}
	if h.Invalidate != nil {
		h.Invalidate(c.Request().Context())
	}
	return c.NoContent(http.StatusNoContent)
}
