// Package dto provides data transfer objects for the auth HTTP layer.
package dto

import (
	"github.com/allisson/taskhub/internal/auth/usecase"
)

// ToLoginInput converts a LoginRequest DTO to a LoginInput use case input
func ToLoginInput(req LoginRequest) usecase.LoginInput {
	return usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToLoginResponse converts a LoginOutput use case output to a LoginResponse DTO
func ToLoginResponse(output *usecase.LoginOutput) LoginResponse {
	return LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresIn:   output.ExpiresIn,
	}
}
