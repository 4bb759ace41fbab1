// Package dto provides data transfer objects for the task HTTP layer.
package dto

import (
	"time"

	"github.com/allisson/taskhub/internal/pagination"
)

// TaskResponse represents the API response for a task. Description is
// omitted from the payload when the task has none.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	AssigneeID  string    `json:"assignee_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListTasksResponse represents a paginated page of tasks
type ListTasksResponse struct {
	Data []TaskResponse  `json:"data"`
	Meta pagination.Meta `json:"meta"`
}
