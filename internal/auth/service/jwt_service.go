// Package service provides token issuing and verification for authentication.
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/allisson/taskhub/internal/errors"
	userDomain "github.com/allisson/taskhub/internal/user/domain"
)

// issuer identifies tokens minted by this service.
const issuer = "taskhub"

// Claims carries the authenticated user's identity inside a JWT.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for access token operations.
type TokenService interface {
	// Generate mints a signed access token for the user.
	Generate(user *userDomain.User) (string, error)

	// Validate parses and verifies a token string, returning its claims.
	// Expired, malformed or mis-signed tokens all map to ErrUnauthorized.
	Validate(tokenString string) (*Claims, error)

	// TokenTTL returns the configured token lifetime.
	TokenTTL() time.Duration
}

// jwtTokenService implements TokenService with HS256-signed JWTs.
type jwtTokenService struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewJWTTokenService creates a TokenService signing with the given secret.
func NewJWTTokenService(secret string, tokenTTL time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, apperrors.New("jwt secret must not be empty")
	}
	if tokenTTL <= 0 {
		return nil, apperrors.New("token ttl must be positive")
	}
	return &jwtTokenService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}, nil
}

// Generate mints a signed access token for the user.
func (s *jwtTokenService) Generate(user *userDomain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Validate parses and verifies a token string, returning its claims.
func (s *jwtTokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, apperrors.ErrUnauthorized
			}
			return s.secret, nil
		},
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "token expired")
		}
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}

// TokenTTL returns the configured token lifetime.
func (s *jwtTokenService) TokenTTL() time.Duration {
	return s.tokenTTL
}
