package usecase

import (
	"context"
	"time"

	"github.com/allisson/taskhub/internal/metrics"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/task/domain"
)

// taskUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type taskUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewTaskUseCaseWithMetrics wraps a task UseCase with metrics recording.
func NewTaskUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &taskUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *taskUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordOperation(ctx, "task", operation, status)
	t.metrics.RecordDuration(ctx, "task", operation, time.Since(start), status)
}

// CreateTask records metrics for task creation operations.
func (t *taskUseCaseWithMetrics) CreateTask(
	ctx context.Context,
	input CreateTaskInput,
) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.CreateTask(ctx, input)
	t.record(ctx, "task_create", start, err)
	return task, err
}

// GetTask records metrics for task retrieval operations.
func (t *taskUseCaseWithMetrics) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.GetTask(ctx, id)
	t.record(ctx, "task_get", start, err)
	return task, err
}

// ListTasks records metrics for task list operations.
func (t *taskUseCaseWithMetrics) ListTasks(
	ctx context.Context,
	params pagination.Params,
) ([]*domain.Task, pagination.Meta, error) {
	start := time.Now()
	tasks, meta, err := t.next.ListTasks(ctx, params)
	t.record(ctx, "task_list", start, err)
	return tasks, meta, err
}

// SearchTasks records metrics for task search operations.
func (t *taskUseCaseWithMetrics) SearchTasks(
	ctx context.Context,
	params domain.SearchParams,
) ([]*domain.Task, pagination.Meta, error) {
	start := time.Now()
	tasks, meta, err := t.next.SearchTasks(ctx, params)
	t.record(ctx, "task_search", start, err)
	return tasks, meta, err
}

// UpdateTask records metrics for task update operations.
func (t *taskUseCaseWithMetrics) UpdateTask(
	ctx context.Context,
	id string,
	input UpdateTaskInput,
) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.UpdateTask(ctx, id, input)
	t.record(ctx, "task_update", start, err)
	return task, err
}

// DeleteTask records metrics for task deletion operations.
func (t *taskUseCaseWithMetrics) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.DeleteTask(ctx, id)
	t.record(ctx, "task_delete", start, err)
	return task, err
}
