// Package dto provides data transfer objects for the task HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/taskhub/internal/task/domain"
	appValidation "github.com/allisson/taskhub/internal/validation"
)

// statusIn validates a status string against the known task statuses.
var statusIn = validation.In(
	domain.StatusTodo.String(),
	domain.StatusInProgress.String(),
	domain.StatusDone.String(),
).Error("status must be one of todo, in_progress, done")

// CreateTaskRequest represents the API request for task creation.
// Status is optional and defaults to todo; description is optional.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	AssigneeID  string  `json:"assignee_id"`
}

// Validate validates the CreateTaskRequest using the jellydator/validation library
func (r *CreateTaskRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&r.Description,
			validation.NilOrNotEmpty.Error("description must not be empty when present"),
			validation.Length(50, 1000).Error("description must be between 50 and 1000 characters"),
		),
		validation.Field(&r.Status,
			statusIn,
		),
		validation.Field(&r.AssigneeID,
			validation.Required.Error("assignee_id is required"),
			appValidation.UUID,
		),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateTaskRequest represents the API request for a partial task update.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	AssigneeID  *string `json:"assignee_id"`
}

// Validate validates only the provided fields of the UpdateTaskRequest.
func (r *UpdateTaskRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty when present"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&r.Description,
			validation.NilOrNotEmpty.Error("description must not be empty when present"),
			validation.Length(50, 1000).Error("description must be between 50 and 1000 characters"),
		),
		validation.Field(&r.Status,
			validation.NilOrNotEmpty.Error("status must not be empty when present"),
			statusIn,
		),
		validation.Field(&r.AssigneeID,
			appValidation.UUID,
		),
	)
	return appValidation.WrapValidationError(err)
}
