package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/task/domain"
	"github.com/allisson/taskhub/internal/task/usecase"
	userDomain "github.com/allisson/taskhub/internal/user/domain"
)

// MockTaskUseCase is a mock implementation of usecase.UseCase
type MockTaskUseCase struct {
	mock.Mock
}

func (m *MockTaskUseCase) CreateTask(
	ctx context.Context,
	input usecase.CreateTaskInput,
) (*domain.Task, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskUseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskUseCase) ListTasks(
	ctx context.Context,
	params pagination.Params,
) ([]*domain.Task, pagination.Meta, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, pagination.Meta{}, args.Error(2)
	}
	return args.Get(0).([]*domain.Task), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockTaskUseCase) SearchTasks(
	ctx context.Context,
	params domain.SearchParams,
) ([]*domain.Task, pagination.Meta, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, pagination.Meta{}, args.Error(2)
	}
	return args.Get(0).([]*domain.Task), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockTaskUseCase) UpdateTask(
	ctx context.Context,
	id string,
	input usecase.UpdateTaskInput,
) (*domain.Task, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskUseCase) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

const testDescription = "Prepare the quarterly release: collect the changelog, " +
	"verify the migration scripts and tag the release candidate build."

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testTask(t *testing.T) *domain.Task {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	description := testDescription
	task, err := domain.NewTask(domain.TaskRecord{
		ID:          domain.NewTaskID().String(),
		Title:       "Prepare release",
		Description: &description,
		Status:      domain.StatusTodo.String(),
		AssigneeID:  userDomain.NewUserID().String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return task
}

func newTaskRouter(useCase usecase.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewTaskHandler(useCase, testLogger())
	router := gin.New()
	router.POST("/v1/tasks", handler.CreateHandler)
	router.GET("/v1/tasks", handler.ListHandler)
	router.GET("/v1/tasks/search", handler.SearchHandler)
	router.GET("/v1/tasks/:id", handler.GetHandler)
	router.PATCH("/v1/tasks/:id", handler.UpdateHandler)
	router.DELETE("/v1/tasks/:id", handler.DeleteHandler)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			_ = json.NewEncoder(&buf).Encode(v)
		}
		reader = &buf
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestTaskHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)
		task := testTask(t)

		useCase.On("CreateTask", mock.Anything, mock.MatchedBy(func(input usecase.CreateTaskInput) bool {
			return input.Title == "Prepare release" &&
				input.Description != nil && *input.Description == testDescription &&
				input.Status == "" &&
				input.AssigneeID == task.AssigneeID.String()
		})).Return(task, nil)

		recorder := doJSON(router, http.MethodPost, "/v1/tasks", gin.H{
			"title":       "Prepare release",
			"description": testDescription,
			"assignee_id": task.AssigneeID.String(),
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, task.ID.String(), response["id"])
		assert.Equal(t, "todo", response["status"])

		useCase.AssertExpectations(t)
	})

	t.Run("NoDescriptionOmittedFromResponse", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		now := time.Now().UTC().Truncate(time.Microsecond)
		task, err := domain.NewTask(domain.TaskRecord{
			ID:         domain.NewTaskID().String(),
			Title:      "Prepare release",
			Status:     domain.StatusTodo.String(),
			AssigneeID: userDomain.NewUserID().String(),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		require.NoError(t, err)

		useCase.On("CreateTask", mock.Anything, mock.Anything).Return(task, nil)

		recorder := doJSON(router, http.MethodPost, "/v1/tasks", gin.H{
			"title":       "Prepare release",
			"assignee_id": task.AssigneeID.String(),
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.NotContains(t, response, "description")
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		recorder := doJSON(router, http.MethodPost, "/v1/tasks", "{not json")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		useCase.AssertNotCalled(t, "CreateTask")
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		recorder := doJSON(router, http.MethodPost, "/v1/tasks", gin.H{
			"title":       "Prepare release",
			"status":      "archived",
			"assignee_id": userDomain.NewUserID().String(),
		})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "CreateTask")
	})

	t.Run("ShortDescription", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		recorder := doJSON(router, http.MethodPost, "/v1/tasks", gin.H{
			"title":       "Prepare release",
			"description": "too short",
			"assignee_id": userDomain.NewUserID().String(),
		})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "CreateTask")
	})
}

func TestTaskHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)
		task := testTask(t)

		useCase.On("GetTask", mock.Anything, task.ID.String()).Return(task, nil)

		recorder := doJSON(router, http.MethodGet, "/v1/tasks/"+task.ID.String(), nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), task.Title)
	})

	t.Run("NotFound", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		useCase.On("GetTask", mock.Anything, "not-a-uuid").
			Return(nil, domain.ErrTaskNotFound)

		recorder := doJSON(router, http.MethodGet, "/v1/tasks/not-a-uuid", nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestTaskHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)
		task := testTask(t)

		expectedParams := pagination.Params{Page: 1, Limit: 50, SortOrder: pagination.SortOrderDesc}
		useCase.On("ListTasks", mock.Anything, expectedParams).
			Return([]*domain.Task{task}, pagination.NewMeta(1, 50, 1), nil)

		recorder := doJSON(router, http.MethodGet, "/v1/tasks", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Data []map[string]any `json:"data"`
			Meta pagination.Meta  `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
		assert.Equal(t, 1, response.Meta.Total)
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		recorder := doJSON(router, http.MethodGet, "/v1/tasks?limit=9999", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "ListTasks")
	})
}

func TestTaskHandler_Search(t *testing.T) {
	t.Run("AllFilters", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)
		task := testTask(t)
		assigneeID := userDomain.NewUserID()
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		useCase.On("SearchTasks", mock.Anything, mock.MatchedBy(func(params domain.SearchParams) bool {
			return params.Text == "release" &&
				len(params.Statuses) == 2 &&
				params.Statuses[0] == domain.StatusTodo &&
				params.Statuses[1] == domain.StatusInProgress &&
				params.AssigneeID != nil && *params.AssigneeID == assigneeID &&
				params.CreatedFrom != nil && params.CreatedFrom.Equal(from) &&
				params.CreatedTo != nil && params.CreatedTo.Equal(to) &&
				params.Pagination.Page == 1 && params.Pagination.Limit == 10
		})).Return([]*domain.Task{task}, pagination.NewMeta(1, 10, 1), nil)

		query := url.Values{}
		query.Set("q", "release")
		query.Set("status", "todo,in_progress")
		query.Set("assignee_id", assigneeID.String())
		query.Set("created_from", from.Format(time.RFC3339))
		query.Set("created_to", to.Format(time.RFC3339))
		query.Set("limit", "10")

		recorder := doJSON(router, http.MethodGet, "/v1/tasks/search?"+query.Encode(), nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("RepeatedStatusParams", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		useCase.On("SearchTasks", mock.Anything, mock.MatchedBy(func(params domain.SearchParams) bool {
			return len(params.Statuses) == 2 &&
				params.Statuses[0] == domain.StatusTodo &&
				params.Statuses[1] == domain.StatusDone
		})).Return([]*domain.Task{}, pagination.NewMeta(1, 50, 0), nil)

		recorder := doJSON(router, http.MethodGet, "/v1/tasks/search?status=todo&status=done", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("InvalidAssigneeID", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		recorder := doJSON(router, http.MethodGet, "/v1/tasks/search?assignee_id=not-a-uuid", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "SearchTasks")
	})

	t.Run("InvalidTimestamp", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		recorder := doJSON(router, http.MethodGet, "/v1/tasks/search?created_from=yesterday", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "SearchTasks")
	})

	t.Run("InvalidStatusFilter", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		useCase.On("SearchTasks", mock.Anything, mock.Anything).
			Return(nil, pagination.Meta{}, apperrors.Wrap(
				apperrors.ErrInvalidInput,
				"status filter: must be one of todo, in_progress, done",
			))

		recorder := doJSON(router, http.MethodGet, "/v1/tasks/search?status=archived", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestTaskHandler_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)
		task := testTask(t)
		status := "done"

		useCase.On("UpdateTask", mock.Anything, task.ID.String(), usecase.UpdateTaskInput{
			Status: &status,
		}).Return(task, nil)

		recorder := doJSON(router, http.MethodPatch, "/v1/tasks/"+task.ID.String(), gin.H{
			"status": "done",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)

		recorder := doJSON(router, http.MethodPatch, "/v1/tasks/some-id", gin.H{
			"status": "archived",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "UpdateTask")
	})

	t.Run("NotFound", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)
		id := domain.NewTaskID().String()

		useCase.On("UpdateTask", mock.Anything, id, mock.Anything).
			Return(nil, domain.ErrTaskNotFound)

		recorder := doJSON(router, http.MethodPatch, fmt.Sprintf("/v1/tasks/%s", id), gin.H{
			"title": "Prepare release",
		})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Run("ReturnsDeletedTask", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)
		task := testTask(t)

		useCase.On("DeleteTask", mock.Anything, task.ID.String()).Return(task, nil)

		recorder := doJSON(router, http.MethodDelete, "/v1/tasks/"+task.ID.String(), nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), task.ID.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		useCase := &MockTaskUseCase{}
		router := newTaskRouter(useCase)
		id := domain.NewTaskID().String()

		useCase.On("DeleteTask", mock.Anything, id).Return(nil, domain.ErrTaskNotFound)

		recorder := doJSON(router, http.MethodDelete, "/v1/tasks/"+id, nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
