// Package usecase implements the task business logic and orchestrates task domain operations.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/taskhub/internal/database"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/task/domain"
	userDomain "github.com/allisson/taskhub/internal/user/domain"
	appValidation "github.com/allisson/taskhub/internal/validation"
)

// CreateTaskInput contains the input data for task creation. Status is
// optional and defaults to todo.
type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	AssigneeID  string  `json:"assignee_id"`
}

// UpdateTaskInput contains the input data for a partial task update.
// Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	AssigneeID  *string `json:"assignee_id"`
}

// UseCase defines the interface for task business logic operations
type UseCase interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, params pagination.Params) ([]*domain.Task, pagination.Meta, error)
	SearchTasks(ctx context.Context, params domain.SearchParams) ([]*domain.Task, pagination.Meta, error)
	UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)
}

// TaskRepository interface defines task repository operations
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	List(ctx context.Context, params pagination.Params) ([]*domain.Task, pagination.Meta, error)
	Search(ctx context.Context, params domain.SearchParams) ([]*domain.Task, pagination.Meta, error)
	Delete(ctx context.Context, id domain.TaskID) (*domain.Task, error)
}

// TaskUseCase handles task-related business logic
type TaskUseCase struct {
	txManager database.TxManager
	taskRepo  TaskRepository
}

// NewTaskUseCase creates a new TaskUseCase
func NewTaskUseCase(txManager database.TxManager, taskRepo TaskRepository) UseCase {
	return &TaskUseCase{
		txManager: txManager,
		taskRepo:  taskRepo,
	}
}

// validateCreateTaskInput validates the creation input. Status is checked by
// the domain parser after defaulting, not here.
func (uc *TaskUseCase) validateCreateTaskInput(input CreateTaskInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Description,
			validation.NilOrNotEmpty.Error("description must not be empty when present"),
			validation.Length(50, 1000).Error("description must be between 50 and 1000 characters"),
		),
		validation.Field(&input.AssigneeID,
			validation.Required.Error("assignee_id is required"),
			appValidation.UUID,
		),
	)
	return appValidation.WrapValidationError(err)
}

// validateUpdateTaskInput validates only the provided fields.
func (uc *TaskUseCase) validateUpdateTaskInput(input UpdateTaskInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.NilOrNotEmpty.Error("title must not be empty when present"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Description,
			validation.NilOrNotEmpty.Error("description must not be empty when present"),
			validation.Length(50, 1000).Error("description must be between 50 and 1000 characters"),
		),
		validation.Field(&input.AssigneeID,
			appValidation.UUID,
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateTask creates a new task. The assignee is accepted as any valid UUID;
// referential integrity against users is not checked here.
func (uc *TaskUseCase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := uc.validateCreateTaskInput(input); err != nil {
		return nil, err
	}

	statusValue := input.Status
	if statusValue == "" {
		statusValue = domain.StatusTodo.String()
	}
	status, err := domain.ParseStatus(statusValue)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task, err := domain.NewTask(domain.TaskRecord{
		ID:          domain.NewTaskID().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      status.String(),
		AssigneeID:  input.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask retrieves a task by its string identifier. A malformed identifier
// cannot match any stored task, so it resolves to not-found without a query.
func (uc *TaskUseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	taskID, err := domain.ParseTaskID(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	return uc.taskRepo.GetByID(ctx, taskID)
}

// ListTasks returns a page of tasks plus pagination metadata
func (uc *TaskUseCase) ListTasks(
	ctx context.Context,
	params pagination.Params,
) ([]*domain.Task, pagination.Meta, error) {
	if err := params.Validate(); err != nil {
		return nil, pagination.Meta{}, err
	}
	return uc.taskRepo.List(ctx, params)
}

// SearchTasks returns tasks matching the given filters plus pagination metadata
func (uc *TaskUseCase) SearchTasks(
	ctx context.Context,
	params domain.SearchParams,
) ([]*domain.Task, pagination.Meta, error) {
	if err := params.Validate(); err != nil {
		return nil, pagination.Meta{}, err
	}
	return uc.taskRepo.Search(ctx, params)
}

// UpdateTask applies a partial update to an existing task. The read and the
// write run inside one transaction so concurrent updates cannot interleave
// between them.
func (uc *TaskUseCase) UpdateTask(
	ctx context.Context,
	id string,
	input UpdateTaskInput,
) (*domain.Task, error) {
	taskID, err := domain.ParseTaskID(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	if err := uc.validateUpdateTaskInput(input); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		task, err := uc.taskRepo.GetByID(ctx, taskID)
		if err != nil {
			return err
		}

		if input.Title != nil {
			if task, err = task.UpdateTitle(strings.TrimSpace(*input.Title)); err != nil {
				return err
			}
		}
		if input.Description != nil {
			if task, err = task.UpdateDescription(input.Description); err != nil {
				return err
			}
		}
		if input.Status != nil {
			status, err := domain.ParseStatus(*input.Status)
			if err != nil {
				return err
			}
			if task, err = task.UpdateStatus(status); err != nil {
				return err
			}
		}
		if input.AssigneeID != nil {
			assigneeID, err := userDomain.ParseUserID(*input.AssigneeID)
			if err != nil {
				return err
			}
			if task, err = task.UpdateAssignee(assigneeID); err != nil {
				return err
			}
		}

		// The timestamp refresh is unconditional: an update that provides
		// no fields still produces a new revision.
		if task, err = task.Touch(); err != nil {
			return err
		}

		if err := uc.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask removes a task and returns its prior state
func (uc *TaskUseCase) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	taskID, err := domain.ParseTaskID(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	return uc.taskRepo.Delete(ctx, taskID)
}
