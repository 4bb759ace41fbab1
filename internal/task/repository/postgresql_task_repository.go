// Package repository provides data persistence implementations for task entities.
// Both SQL backends share the row-scanning helpers; only the placeholder style,
// the pattern-match operator and the delete strategy differ.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/allisson/taskhub/internal/database"
	apperrors "github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/task/domain"
)

// taskColumns is the column list matching domain.TaskRecord 1:1.
const taskColumns = "id, title, description, status, assignee_id, created_at, updated_at"

// PostgreSQLTaskRepository handles task persistence for PostgreSQL.
type PostgreSQLTaskRepository struct {
	db *sql.DB
}

// NewPostgreSQLTaskRepository creates a new PostgreSQLTaskRepository.
func NewPostgreSQLTaskRepository(db *sql.DB) *PostgreSQLTaskRepository {
	return &PostgreSQLTaskRepository{db: db}
}

// Create inserts a new task.
func (r *PostgreSQLTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)
	record := task.Serialize()

	query := `INSERT INTO tasks (id, title, description, status, assignee_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.Title,
		descriptionValue(record.Description),
		record.Status,
		record.AssigneeID,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return apperrors.WrapAs(err, apperrors.ErrMutation, "failed to create task")
	}
	return nil
}

// Update writes an updated task, verifying existence via the affected row count.
func (r *PostgreSQLTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)
	record := task.Serialize()

	query := `UPDATE tasks
			  SET title = $1, description = $2, status = $3, assignee_id = $4, updated_at = $5
			  WHERE id = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.Title,
		descriptionValue(record.Description),
		record.Status,
		record.AssigneeID,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return apperrors.WrapAs(err, apperrors.ErrMutation, "failed to update task")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapAs(err, apperrors.ErrMutation, "failed to update task")
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// GetByID retrieves a task by ID.
func (r *PostgreSQLTaskRepository) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	return scanTaskRow(querier.QueryRowContext(ctx, query, id.String()))
}

// List returns a page of tasks plus pagination metadata.
func (r *PostgreSQLTaskRepository) List(
	ctx context.Context,
	params pagination.Params,
) ([]*domain.Task, pagination.Meta, error) {
	querier := database.GetTx(ctx, r.db)

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks`
	if err := querier.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, pagination.Meta{}, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to count tasks")
	}

	dataQuery := `SELECT ` + taskColumns + ` FROM tasks ` +
		orderTaskClause(params) + ` LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, dataQuery, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to list tasks")
	}
	defer rows.Close()

	tasks, err := collectTaskRows(rows)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return tasks, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Search returns tasks matching the given filters plus pagination metadata.
// The count and data queries share the same WHERE clause so the metadata
// reflects the filtered set, not the whole table.
func (r *PostgreSQLTaskRepository) Search(
	ctx context.Context,
	params domain.SearchParams,
) ([]*domain.Task, pagination.Meta, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildPostgreSQLTaskFilter(params)

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, pagination.Meta{}, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to count tasks")
	}

	limitArgs := append(args, params.Pagination.Limit, params.Pagination.Offset())
	dataQuery := fmt.Sprintf(
		`SELECT %s FROM tasks%s %s LIMIT $%d OFFSET $%d`,
		taskColumns,
		where,
		orderTaskClause(params.Pagination),
		len(args)+1,
		len(args)+2,
	)

	rows, err := querier.QueryContext(ctx, dataQuery, limitArgs...)
	if err != nil {
		return nil, pagination.Meta{}, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to search tasks")
	}
	defer rows.Close()

	tasks, err := collectTaskRows(rows)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return tasks, pagination.NewMeta(params.Pagination.Page, params.Pagination.Limit, total), nil
}

// Delete removes a task and returns its prior state.
func (r *PostgreSQLTaskRepository) Delete(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM tasks WHERE id = $1 RETURNING ` + taskColumns

	var record domain.TaskRecord
	var description sql.NullString
	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&record.ID,
		&record.Title,
		&description,
		&record.Status,
		&record.AssigneeID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, apperrors.WrapAs(err, apperrors.ErrMutation, "failed to delete task")
	}
	if description.Valid {
		record.Description = &description.String
	}

	task, err := domain.NewTask(record)
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrDeserialization, "stored task row is invalid")
	}
	return task, nil
}

// buildPostgreSQLTaskFilter assembles the WHERE clause for a task search.
// Filters are AND-combined; the text filter alone spans title OR description.
func buildPostgreSQLTaskFilter(params domain.SearchParams) (string, []any) {
	conditions := make([]string, 0)
	args := make([]any, 0)

	next := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Text != "" {
		pattern := next("%" + params.Text + "%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", pattern, pattern))
	}

	if len(params.Statuses) > 0 {
		placeholders := make([]string, 0, len(params.Statuses))
		for _, status := range params.Statuses {
			placeholders = append(placeholders, next(status.String()))
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if params.AssigneeID != nil {
		conditions = append(conditions, "assignee_id = "+next(params.AssigneeID.String()))
	}

	if params.CreatedFrom != nil {
		conditions = append(conditions, "created_at >= "+next(*params.CreatedFrom))
	}

	if params.CreatedTo != nil {
		conditions = append(conditions, "created_at <= "+next(*params.CreatedTo))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// taskRowScanner abstracts *sql.Row for shared scanning helpers.
type taskRowScanner interface {
	Scan(dest ...any) error
}

// scanTaskRow scans a single row and reconstructs the task through the
// validated factory. A NULL description maps to an absent description.
func scanTaskRow(row taskRowScanner) (*domain.Task, error) {
	var record domain.TaskRecord
	var description sql.NullString

	err := row.Scan(
		&record.ID,
		&record.Title,
		&description,
		&record.Status,
		&record.AssigneeID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to scan task row")
	}
	if description.Valid {
		record.Description = &description.String
	}

	task, err := domain.NewTask(record)
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrDeserialization, "stored task row is invalid")
	}
	return task, nil
}

// collectTaskRows drains a result set through the validated factory.
func collectTaskRows(rows *sql.Rows) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to iterate task rows")
	}
	return tasks, nil
}

// descriptionValue converts an optional description into a driver value.
func descriptionValue(description *string) sql.NullString {
	if description == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *description, Valid: true}
}

// orderTaskClause builds a deterministic ORDER BY from a whitelist of sort
// columns, with id as a tiebreak so ordering is stable across equal values.
func orderTaskClause(params pagination.Params) string {
	column := "created_at"
	switch params.SortBy {
	case "updated_at", "title", "status":
		column = params.SortBy
	}

	direction := "DESC"
	if params.SortOrder == pagination.SortOrderAsc {
		direction = "ASC"
	}

	return "ORDER BY " + column + " " + direction + ", id " + direction
}
