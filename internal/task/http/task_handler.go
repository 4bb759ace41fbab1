// Package http provides HTTP handlers for task-related operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/httputil"
	"github.com/allisson/taskhub/internal/task/domain"
	"github.com/allisson/taskhub/internal/task/http/dto"
	"github.com/allisson/taskhub/internal/task/usecase"
	userDomain "github.com/allisson/taskhub/internal/user/domain"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUseCase usecase.UseCase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
		logger:      logger,
	}
}

// CreateHandler creates a new task.
// POST /v1/tasks - Returns 201 Created with the task.
func (h *TaskHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateTaskRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	task, err := h.taskUseCase.CreateTask(c.Request.Context(), dto.ToCreateTaskInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// GetHandler retrieves a task by ID.
// GET /v1/tasks/:id - Returns 200 OK, or 404 when the id is unknown or malformed.
func (h *TaskHandler) GetHandler(c *gin.Context) {
	task, err := h.taskUseCase.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// ListHandler returns a page of tasks.
// GET /v1/tasks - Supports page, limit, sort_by and sort_order query parameters.
func (h *TaskHandler) ListHandler(c *gin.Context) {
	params, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	tasks, meta, err := h.taskUseCase.ListTasks(c.Request.Context(), params)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTasksResponse(tasks, meta))
}

// SearchHandler returns tasks matching the given filters.
// GET /v1/tasks/search - Supports q (text over title and description), status
// (repeatable or comma-separated), assignee_id, created_from and created_to
// (RFC 3339), plus the usual pagination parameters. Filters combine with AND.
func (h *TaskHandler) SearchHandler(c *gin.Context) {
	params, err := parseSearchParams(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	tasks, meta, err := h.taskUseCase.SearchTasks(c.Request.Context(), params)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTasksResponse(tasks, meta))
}

// UpdateHandler applies a partial update to a task.
// PATCH /v1/tasks/:id - Returns 200 OK with the updated task.
func (h *TaskHandler) UpdateHandler(c *gin.Context) {
	var req dto.UpdateTaskRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	task, err := h.taskUseCase.UpdateTask(c.Request.Context(), c.Param("id"), dto.ToUpdateTaskInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// DeleteHandler removes a task.
// DELETE /v1/tasks/:id - Returns 200 OK with the deleted task's prior state.
func (h *TaskHandler) DeleteHandler(c *gin.Context) {
	task, err := h.taskUseCase.DeleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// parseSearchParams decodes the search query string into domain.SearchParams.
// Malformed values fail here with an invalid input error; cross-field checks
// run later in SearchParams.Validate.
func parseSearchParams(c *gin.Context) (domain.SearchParams, error) {
	pageParams, err := httputil.ParsePagination(c)
	if err != nil {
		return domain.SearchParams{}, err
	}

	params := domain.SearchParams{
		Pagination: pageParams,
		Text:       strings.TrimSpace(c.Query("q")),
	}

	for _, raw := range c.QueryArray("status") {
		for _, value := range strings.Split(raw, ",") {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			params.Statuses = append(params.Statuses, domain.Status(value))
		}
	}

	if value := c.Query("assignee_id"); value != "" {
		assigneeID, err := userDomain.ParseUserID(value)
		if err != nil {
			return domain.SearchParams{}, apperrors.Wrap(
				apperrors.ErrInvalidInput,
				fmt.Sprintf("assignee_id %q: must be a valid UUID", value),
			)
		}
		params.AssigneeID = &assigneeID
	}

	if params.CreatedFrom, err = parseTimeParam(c, "created_from"); err != nil {
		return domain.SearchParams{}, err
	}
	if params.CreatedTo, err = parseTimeParam(c, "created_to"); err != nil {
		return domain.SearchParams{}, err
	}

	return params, nil
}

// parseTimeParam parses an optional RFC 3339 timestamp query parameter.
func parseTimeParam(c *gin.Context, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("%s %q: must be an RFC 3339 timestamp", name, value),
		)
	}
	parsed = parsed.UTC()
	return &parsed, nil
}
