// Package usecase implements the authentication business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"

	"github.com/allisson/taskhub/internal/auth/service"
	apperrors "github.com/allisson/taskhub/internal/errors"
	userDomain "github.com/allisson/taskhub/internal/user/domain"
	appValidation "github.com/allisson/taskhub/internal/validation"
)

// LoginInput contains the credentials for a login attempt
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginOutput contains the issued access token
type LoginOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AuthUseCase defines the interface for authentication operations
type AuthUseCase interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
}

// UserRepository defines the user lookups the auth flow needs
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// authUseCase handles authentication business logic
type authUseCase struct {
	userRepo       UserRepository
	tokenService   service.TokenService
	passwordHasher *pwdhash.PasswordHasher
}

// NewAuthUseCase creates a new AuthUseCase
func NewAuthUseCase(userRepo UserRepository, tokenService service.TokenService) (AuthUseCase, error) {
	// Must match the policy used when hashing user passwords.
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &authUseCase{
		userRepo:       userRepo,
		tokenService:   tokenService,
		passwordHasher: hasher,
	}, nil
}

// validateLoginInput validates the login credentials shape.
func (uc *authUseCase) validateLoginInput(input LoginInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Login verifies the credentials and issues an access token. Unknown emails
// and wrong passwords both surface as unauthorized so the response does not
// reveal which one failed.
func (uc *authUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if err := uc.validateLoginInput(input); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(input.Password), user.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to verify password")
	}
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
	}

	token, err := uc.tokenService.Generate(user)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(uc.tokenService.TokenTTL().Seconds()),
	}, nil
}
