package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/pagination"
)

// ParsePagination safely parses page, limit, sort_by and sort_order query
// parameters into pagination.Params. Pages are 1-indexed; defaults are
// page 1 with a limit of 50, sorted descending.
func ParsePagination(c *gin.Context) (pagination.Params, error) {
	// Parse page query parameter (default: 1)
	pageStr := c.DefaultQuery("page", strconv.Itoa(pagination.DefaultPage))
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return pagination.Params{}, errors.Wrap(errors.ErrInvalidInput, "page must be a positive integer")
	}

	// Parse limit query parameter (default: 50, max: 100)
	limitStr := c.DefaultQuery("limit", strconv.Itoa(pagination.DefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > pagination.MaxLimit {
		return pagination.Params{}, errors.Wrap(
			errors.ErrInvalidInput,
			fmt.Sprintf("limit must be between 1 and %d", pagination.MaxLimit),
		)
	}

	params := pagination.Params{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.DefaultQuery("sort_order", pagination.SortOrderDesc),
	}
	if err := params.Validate(); err != nil {
		return pagination.Params{}, err
	}

	return params, nil
}
