package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/allisson/taskhub/internal/database"
	apperrors "github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/task/domain"
)

// MySQLTaskRepository handles task persistence for MySQL.
type MySQLTaskRepository struct {
	db *sql.DB
}

// NewMySQLTaskRepository creates a new MySQLTaskRepository.
func NewMySQLTaskRepository(db *sql.DB) *MySQLTaskRepository {
	return &MySQLTaskRepository{db: db}
}

// Create inserts a new task.
func (r *MySQLTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)
	record := task.Serialize()

	query := `INSERT INTO tasks (id, title, description, status, assignee_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

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
func (r *MySQLTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)
	record := task.Serialize()

	query := `UPDATE tasks
			  SET title = ?, description = ?, status = ?, assignee_id = ?, updated_at = ?
			  WHERE id = ?`

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
func (r *MySQLTaskRepository) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	return scanTaskRow(querier.QueryRowContext(ctx, query, id.String()))
}

// List returns a page of tasks plus pagination metadata.
func (r *MySQLTaskRepository) List(
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
		orderTaskClause(params) + ` LIMIT ? OFFSET ?`

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
func (r *MySQLTaskRepository) Search(
	ctx context.Context,
	params domain.SearchParams,
) ([]*domain.Task, pagination.Meta, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildMySQLTaskFilter(params)

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, pagination.Meta{}, apperrors.WrapAs(err, apperrors.ErrQuery, "failed to count tasks")
	}

	dataQuery := `SELECT ` + taskColumns + ` FROM tasks` + where + ` ` +
		orderTaskClause(params.Pagination) + ` LIMIT ? OFFSET ?`
	dataArgs := append(args, params.Pagination.Limit, params.Pagination.Offset())

	rows, err := querier.QueryContext(ctx, dataQuery, dataArgs...)
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

// Delete removes a task and returns its prior state. MySQL has no
// DELETE ... RETURNING, so the row is read first inside the same querier.
func (r *MySQLTaskRepository) Delete(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	task, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `DELETE FROM tasks WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id.String())
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrMutation, "failed to delete task")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.WrapAs(err, apperrors.ErrMutation, "failed to delete task")
	}
	if affected == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// buildMySQLTaskFilter assembles the WHERE clause for a task search.
// MySQL has no ILIKE, so both sides of the text match are lowercased.
func buildMySQLTaskFilter(params domain.SearchParams) (string, []any) {
	conditions := make([]string, 0)
	args := make([]any, 0)

	if params.Text != "" {
		pattern := "%" + strings.ToLower(params.Text) + "%"
		conditions = append(conditions, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	if len(params.Statuses) > 0 {
		placeholders := make([]string, 0, len(params.Statuses))
		for _, status := range params.Statuses {
			placeholders = append(placeholders, "?")
			args = append(args, status.String())
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if params.AssigneeID != nil {
		conditions = append(conditions, "assignee_id = ?")
		args = append(args, params.AssigneeID.String())
	}

	if params.CreatedFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *params.CreatedFrom)
	}

	if params.CreatedTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *params.CreatedTo)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
