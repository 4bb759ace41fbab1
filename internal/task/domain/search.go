package domain

import (
	"time"

	apperrors "github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/pagination"
	userDomain "github.com/allisson/taskhub/internal/user/domain"
)

// SearchParams describes a task search: optional case-insensitive text match
// over title and description, combined with optional status, assignee and
// creation date range filters. Absent filters mean "no constraint".
type SearchParams struct {
	Pagination  pagination.Params
	Text        string
	Statuses    []Status
	AssigneeID  *userDomain.UserID
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Validate checks the pagination bounds, the status values and the date
// range invariant: when both bounds are present, CreatedFrom must not be
// after CreatedTo. This runs at decode time, before any query is issued.
func (p SearchParams) Validate() error {
	if err := p.Pagination.Validate(); err != nil {
		return err
	}

	for _, status := range p.Statuses {
		if !status.IsValid() {
			return apperrors.Wrap(
				apperrors.ErrInvalidInput,
				"status filter: must be one of todo, in_progress, done",
			)
		}
	}

	if p.CreatedFrom != nil && p.CreatedTo != nil && p.CreatedFrom.After(*p.CreatedTo) {
		return apperrors.Wrap(
			apperrors.ErrInvalidInput,
			"created_from must be before or equal to created_to",
		)
	}

	return nil
}
