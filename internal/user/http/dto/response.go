// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"time"

	"github.com/allisson/taskhub/internal/pagination"
)

// UserResponse represents the API response for a user.
// It excludes sensitive information like passwords and provides
// a clean external representation of the user domain model.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListUsersResponse represents a paginated page of users
type ListUsersResponse struct {
	Data []UserResponse  `json:"data"`
	Meta pagination.Meta `json:"meta"`
}
