// Package dto provides data transfer objects for the auth HTTP layer.
package dto

// LoginResponse represents the API response for a successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
