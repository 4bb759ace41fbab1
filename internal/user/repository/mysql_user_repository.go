package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/allisson/taskhub/internal/database"
	apperrors "github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/user/domain"
)

// MySQLUserRepository handles user persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	record := user.Serialize()

	query := `INSERT INTO users (id, name, email, password, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.Name,
		record.Email,
		record.Password,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.WrapAs(err, apperrors.ErrMutation, "failed to create user")
	}
	return nil
}

// Update writes an updated user, verifying existence via the affected row count.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	record := user.Serialize()

	query := `UPDATE users
			  SET name = ?, email = ?, password = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.Name,
		record.Email,
		record.Password,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.WrapAs(err, apperrors.ErrMutation, "failed to update user")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapAs(err, apperrors.ErrMutation, "failed to update user")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	return scanUserRow(querier.QueryRowContext(ctx, query, id.String()))
}

// GetByEmail retrieves a user by email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	return scanUserRow(querier.QueryRowContext(ctx, query, email))
}

// List returns a page of users plus pagination metadata.
func (r *MySQLUserRepository) List(
	ctx context.Context,
	params pagination.Params,
) ([]*domain.User, pagination.Meta, error) {
	querier := database.GetTx(ctx, r.db)

	var total int
	countQuery := `SELECT COUNT(*) FROM users`
	if err := querier.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, pagination.Meta{}, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to count users")
	}

	dataQuery := `SELECT ` + userColumns + ` FROM users ` +
		orderUserClause(params) + ` LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, dataQuery, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to list users")
	}
	defer rows.Close()

	users, err := collectUserRows(rows)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Delete removes a user and returns its prior state. MySQL has no
// DELETE ... RETURNING, so the row is read first inside the same querier.
func (r *MySQLUserRepository) Delete(ctx context.Context, id domain.UserID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `DELETE FROM users WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id.String())
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrMutation, "failed to delete user")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrMutation, "failed to delete user")
	}
	if affected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate entry error
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "error 1062") || strings.Contains(errMsg, "duplicate entry")
}
