// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"

	"github.com/allisson/taskhub/internal/database"
	apperrors "github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/user/domain"
	appValidation "github.com/allisson/taskhub/internal/validation"
)

// CreateUserInput contains the input data for user creation
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput contains the input data for a partial user update.
// Nil fields are left untouched; provided fields replace the current value
// and the whole entity is re-validated.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, params pagination.Params) ([]*domain.User, pagination.Meta, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (*domain.User, error)
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, params pagination.Params) ([]*domain.User, pagination.Meta, error)
	Delete(ctx context.Context, id domain.UserID) (*domain.User, error)
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	passwordHasher *pwdhash.PasswordHasher
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(txManager database.TxManager, userRepo UserRepository) (UseCase, error) {
	// Interactive policy keeps hashing latency acceptable for request-path use.
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &UserUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		passwordHasher: hasher,
	}, nil
}

// passwordRules is the shared password policy for creation and updates.
var passwordRules = []validation.Rule{
	validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
	appValidation.PasswordStrength{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	},
}

// validateCreateUserInput validates the creation input before any hashing or
// persistence work happens.
func (uc *UserUseCase) validateCreateUserInput(input CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			append([]validation.Rule{validation.Required.Error("password is required")}, passwordRules...)...,
		),
	)
	return appValidation.WrapValidationError(err)
}

// validateUpdateUserInput validates only the provided fields; nil fields are
// skipped entirely.
func (uc *UserUseCase) validateUpdateUserInput(input UpdateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.NilOrNotEmpty.Error("name must not be empty when present"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.NilOrNotEmpty.Error("email must not be empty when present"),
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			passwordRules...,
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateUser creates a new user with a hashed password. The email unique
// index is the only uniqueness authority; a duplicate surfaces as a conflict
// from the repository.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := uc.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user, err := domain.NewUser(domain.UserRecord{
		ID:        domain.NewUserID().String(),
		Name:      strings.TrimSpace(input.Name),
		Email:     normalizeEmail(input.Email),
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by its string identifier. A malformed identifier
// cannot match any stored user, so it resolves to not-found without a query.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	userID, err := domain.ParseUserID(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.userRepo.GetByID(ctx, userID)
}

// GetUserByEmail retrieves a user by email
func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
}

// ListUsers returns a page of users plus pagination metadata
func (uc *UserUseCase) ListUsers(
	ctx context.Context,
	params pagination.Params,
) ([]*domain.User, pagination.Meta, error) {
	if err := params.Validate(); err != nil {
		return nil, pagination.Meta{}, err
	}
	return uc.userRepo.List(ctx, params)
}

// UpdateUser applies a partial update to an existing user. The read and the
// write run inside one transaction so concurrent updates cannot interleave
// between them.
func (uc *UserUseCase) UpdateUser(
	ctx context.Context,
	id string,
	input UpdateUserInput,
) (*domain.User, error) {
	userID, err := domain.ParseUserID(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if err := uc.validateUpdateUserInput(input); err != nil {
		return nil, err
	}

	var updated *domain.User
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			if user, err = user.UpdateName(strings.TrimSpace(*input.Name)); err != nil {
				return err
			}
		}
		if input.Email != nil {
			if user, err = user.UpdateEmail(normalizeEmail(*input.Email)); err != nil {
				return err
			}
		}
		if input.Password != nil {
			hashedPassword, err := uc.passwordHasher.Hash([]byte(*input.Password))
			if err != nil {
				return apperrors.Wrap(err, "failed to hash password")
			}
			if user, err = user.UpdatePassword(hashedPassword); err != nil {
				return err
			}
		}

		// The timestamp refresh is unconditional: an update that provides
		// no fields still produces a new revision.
		if user, err = user.Touch(); err != nil {
			return err
		}

		if err := uc.userRepo.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user and returns its prior state
func (uc *UserUseCase) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	userID, err := domain.ParseUserID(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(ctx, userID)
}

// normalizeEmail lowercases and trims an email so lookups and uniqueness
// checks are case-insensitive.
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
