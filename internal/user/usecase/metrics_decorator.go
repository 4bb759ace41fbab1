package usecase

import (
	"context"
	"time"

	"github.com/allisson/taskhub/internal/metrics"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a user UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}

// CreateUser records metrics for user creation operations.
func (u *userUseCaseWithMetrics) CreateUser(
	ctx context.Context,
	input CreateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.CreateUser(ctx, input)
	u.record(ctx, "user_create", start, err)
	return user, err
}

// GetUser records metrics for user retrieval operations.
func (u *userUseCaseWithMetrics) GetUser(ctx context.Context, id string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetUser(ctx, id)
	u.record(ctx, "user_get", start, err)
	return user, err
}

// GetUserByEmail records metrics for user lookup by email.
func (u *userUseCaseWithMetrics) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetUserByEmail(ctx, email)
	u.record(ctx, "user_get_by_email", start, err)
	return user, err
}

// ListUsers records metrics for user list operations.
func (u *userUseCaseWithMetrics) ListUsers(
	ctx context.Context,
	params pagination.Params,
) ([]*domain.User, pagination.Meta, error) {
	start := time.Now()
	users, meta, err := u.next.ListUsers(ctx, params)
	u.record(ctx, "user_list", start, err)
	return users, meta, err
}

// UpdateUser records metrics for user update operations.
func (u *userUseCaseWithMetrics) UpdateUser(
	ctx context.Context,
	id string,
	input UpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.UpdateUser(ctx, id, input)
	u.record(ctx, "user_update", start, err)
	return user, err
}

// DeleteUser records metrics for user deletion operations.
func (u *userUseCaseWithMetrics) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.DeleteUser(ctx, id)
	u.record(ctx, "user_delete", start, err)
	return user, err
}
