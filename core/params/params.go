package params

import (
	"strconv"

	"campus-events-api/core/constants"

	"github.com/labstack/echo/v4"
)

// QueryParams holds the common list-query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
	SortBy     string
}

func NewQueryParams(c echo.Context) *QueryParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = constants.DefaultPageNumber
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	return &QueryParams{
		PageNumber: page,
		PageSize:   limit,
		Search:     c.QueryParam("search"),
		SortBy:     c.QueryParam("sortBy"),
	}
}
