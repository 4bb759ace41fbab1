// Package pagination provides page-based pagination parameters and metadata
// shared by repositories and HTTP handlers.
package pagination

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/taskhub/internal/validation"
)

const (
	// DefaultPage is the page used when the caller does not supply one.
	DefaultPage = 1
	// DefaultLimit is the page size used when the caller does not supply one.
	DefaultLimit = 50
	// MaxLimit is the largest page size a caller may request.
	MaxLimit = 100

	// SortOrderAsc sorts results in ascending order.
	SortOrderAsc = "asc"
	// SortOrderDesc sorts results in descending order.
	SortOrderDesc = "desc"
)

// Params holds one-indexed pagination parameters plus optional sorting.
// SortBy is mapped against each repository's own sortable columns; values
// outside that set fall back to the default created_at ordering.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// NewParams returns Params with defaults applied for zero values.
func NewParams(page, limit int) Params {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	return Params{Page: page, Limit: limit, SortOrder: SortOrderDesc}
}

// Validate checks that the parameters are within accepted bounds.
func (p Params) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Page,
			validation.Required.Error("page is required"),
			validation.Min(1).Error("page must be at least 1"),
		),
		validation.Field(&p.Limit,
			validation.Required.Error("limit is required"),
			validation.Min(1).Error("limit must be at least 1"),
			validation.Max(MaxLimit).Error("limit must be at most 100"),
		),
		validation.Field(&p.SortOrder,
			appValidation.SortOrder,
		),
	)
	return appValidation.WrapValidationError(err)
}

// Offset converts the one-indexed page into a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes the pagination envelope returned alongside a page of data.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewMeta computes pagination metadata for a page of a result set.
// An empty result set yields TotalPages 0 and HasNext false.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
