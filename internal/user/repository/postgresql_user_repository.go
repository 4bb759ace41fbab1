// Package repository provides data persistence implementations for user entities.
// Repositories support both PostgreSQL and MySQL; every row crosses the
// persistence boundary through the validated domain factory, so a malformed
// stored row surfaces as a typed deserialization error.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/taskhub/internal/database"
	apperrors "github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/user/domain"
)

// userColumns is the column list matching domain.UserRecord 1:1.
const userColumns = "id, name, email, password, created_at, updated_at"

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new user. Identifier uniqueness is owned by the caller's
// UUID generation; only the email unique index is mapped to a domain error.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	record := user.Serialize()

	query := `INSERT INTO users (id, name, email, password, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

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
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.WrapAs(err, apperrors.ErrMutation, "failed to create user")
	}
	return nil
}

// Update writes an updated user. It verifies existence via the affected row
// count; when no row matches the identifier it fails without mutating.
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)
	record := user.Serialize()

	query := `UPDATE users
			  SET name = $1, email = $2, password = $3, updated_at = $4
			  WHERE id = $5`

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
		if isPostgreSQLUniqueViolation(err) {
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

// GetByID retrieves a user by ID. The not-found sentinel is the explicit
// empty-result marker, distinct from query failures.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUserRow(querier.QueryRowContext(ctx, query, id.String()))
}

// GetByEmail retrieves a user by email.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUserRow(querier.QueryRowContext(ctx, query, email))
}

// List returns a page of users plus pagination metadata. The count and data
// queries share the same predicate but run as independent round trips; totals
// may drift from the returned rows under concurrent writes.
func (r *PostgreSQLUserRepository) List(
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
		orderUserClause(params) + ` LIMIT $1 OFFSET $2`

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

// Delete removes a user and returns its prior state. A missing row fails
// with the not-found sentinel.
func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id domain.UserID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	var record domain.UserRecord
	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&record.ID,
		&record.Name,
		&record.Email,
		&record.Password,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.WrapAs(err, apperrors.ErrMutation, "failed to delete user")
	}

	user, err := domain.NewUser(record)
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrDeserialization, "stored user row is invalid")
	}
	return user, nil
}

// userRowScanner abstracts *sql.Row for shared scanning helpers.
type userRowScanner interface {
	Scan(dest ...any) error
}

// scanUserRow scans a single row and reconstructs the user through the
// validated factory.
func scanUserRow(row userRowScanner) (*domain.User, error) {
	var record domain.UserRecord

	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Email,
		&record.Password,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to scan user row")
	}

	user, err := domain.NewUser(record)
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrDeserialization, "stored user row is invalid")
	}
	return user, nil
}

// collectUserRows drains a result set through the validated factory.
func collectUserRows(rows *sql.Rows) ([]*domain.User, error) {
	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to iterate user rows")
	}
	return users, nil
}

// orderUserClause builds a deterministic ORDER BY from a whitelist of sort
// columns, with id as a tiebreak so ordering is stable across equal values.
func orderUserClause(params pagination.Params) string {
	column := "created_at"
	switch params.SortBy {
	case "updated_at", "name", "email":
		column = params.SortBy
	}

	direction := "DESC"
	if params.SortOrder == pagination.SortOrderAsc {
		direction = "ASC"
	}

	return "ORDER BY " + column + " " + direction + ", id " + direction
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
