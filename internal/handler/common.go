package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parsePaging reads page and per_page query parameters, falling back to
// page 0 and the given default page size.  The page size is clamped to
// 100 so a single request cannot pull the whole table.
func parsePaging(c echo.Context, defaultPerPage int) (limit, offset int) {
	page := 0
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	perPage := defaultPerPage
	if v, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && v > 0 {
		perPage = v
	}
	if perPage > 100 {
		perPage = 100
	}
	return perPage, page * perPage
}
