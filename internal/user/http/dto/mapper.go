// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/user/domain"
	"github.com/allisson/taskhub/internal/user/usecase"
)

// ToCreateUserInput converts a CreateUserRequest DTO to a CreateUserInput use case input
func ToCreateUserInput(req CreateUserRequest) usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToUpdateUserInput converts an UpdateUserRequest DTO to an UpdateUserInput use case input
func ToUpdateUserInput(req UpdateUserRequest) usecase.UpdateUserInput {
	return usecase.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToUserResponse converts a domain User model to a UserResponse DTO.
// This enforces the boundary between internal domain models and external API
// contracts; the password hash never crosses it.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToListUsersResponse converts a page of users plus metadata to a ListUsersResponse DTO
func ToListUsersResponse(users []*domain.User, meta pagination.Meta) ListUsersResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, ToUserResponse(user))
	}
	return ListUsersResponse{Data: data, Meta: meta}
}
