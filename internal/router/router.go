package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"movienight/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not depend on any repository on
// the provided Echo instance: a root banner and a health check.
func RegisterRoutes(e *echo.Echo) {
	// The root path answers with a short banner so a browser hit confirms
	// the API is reachable.
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Connection to movienight API is working!")
	})
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers all domain routes.  The cache middleware is
// attached per-route to the read endpoints whose responses are computed
// from rating joins; write endpoints bypass it and instead invalidate
// it after commit.
func RegisterAPI(
	e *echo.Echo,
	movies *handler.MovieHandler,
	persons *handler.PersonHandler,
	nights *handler.NightHandler,
	ratings *handler.RatingHandler,
	watchlists *handler.WatchlistHandler,
	cache echo.MiddlewareFunc,
) {
	// Movies: create, browse with optional name filter, aggregated detail.
	e.POST("/movie", movies.CreateMovie)
	e.GET("/movie", movies.ListMovies, cache)
	e.GET("/movie/:id", movies.GetMovieDetails, cache)

	// Persons: create, browse, detail with recent nights.
	e.POST("/person", persons.CreatePerson)
	e.GET("/person", persons.ListPersons, cache)
	e.GET("/person/:id", persons.GetPersonDetails, cache)

	// Nights: atomic recording and the per-night breakdown.
	e.POST("/night", nights.CreateNight)
	e.GET("/night/:id", nights.GetNightDetails, cache)

	// Ratings: append-only inserts against existing views.
	e.POST("/rating", ratings.CreateRating)

	// Watchlists: create, ordered listing, entry add/remove.
	e.POST("/watchlist", watchlists.CreateWatchlist)
	e.GET("/watchlist/:id", watchlists.GetWatchlist, cache)
	e.POST("/watchlist/:id", watchlists.AddEntry)
	e.DELETE("/watchlist/:id/:idx", watchlists.RemoveEntry)
}
