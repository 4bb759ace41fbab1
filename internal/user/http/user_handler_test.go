package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/taskhub/internal/errors"
	"github.com/allisson/taskhub/internal/pagination"
	"github.com/allisson/taskhub/internal/user/domain"
	"github.com/allisson/taskhub/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of usecase.UseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) CreateUser(
	ctx context.Context,
	input usecase.CreateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) ListUsers(
	ctx context.Context,
	params pagination.Params,
) ([]*domain.User, pagination.Meta, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, pagination.Meta{}, args.Error(2)
	}
	return args.Get(0).([]*domain.User), args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *MockUserUseCase) UpdateUser(
	ctx context.Context,
	id string,
	input usecase.UpdateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user, err := domain.NewUser(domain.UserRecord{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      "John Doe",
		Email:     "john@example.com",
		Password:  "hashed-password",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return user
}

func newUserRouter(useCase usecase.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewUserHandler(useCase, testLogger())
	router := gin.New()
	router.POST("/v1/users", handler.CreateHandler)
	router.GET("/v1/users", handler.ListHandler)
	router.GET("/v1/users/:id", handler.GetHandler)
	router.PATCH("/v1/users/:id", handler.UpdateHandler)
	router.DELETE("/v1/users/:id", handler.DeleteHandler)
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

func TestUserHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)
		user := testUser(t)

		useCase.On("CreateUser", mock.Anything, usecase.CreateUserInput{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "SecurePass123!",
		}).Return(user, nil)

		recorder := doJSON(router, http.MethodPost, "/v1/users", gin.H{
			"name":     "John Doe",
			"email":    "john@example.com",
			"password": "SecurePass123!",
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, user.ID.String(), response["id"])
		assert.Equal(t, "John Doe", response["name"])
		// The password hash must never appear in a response.
		assert.NotContains(t, response, "password")

		useCase.AssertExpectations(t)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)

		recorder := doJSON(router, http.MethodPost, "/v1/users", "{not json")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		useCase.AssertNotCalled(t, "CreateUser")
	})

	t.Run("ValidationError", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)

		recorder := doJSON(router, http.MethodPost, "/v1/users", gin.H{
			"name":     "John Doe",
			"email":    "not-an-email",
			"password": "SecurePass123!",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "CreateUser")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)

		useCase.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, domain.ErrUserAlreadyExists)

		recorder := doJSON(router, http.MethodPost, "/v1/users", gin.H{
			"name":     "John Doe",
			"email":    "john@example.com",
			"password": "SecurePass123!",
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)
		user := testUser(t)

		useCase.On("GetUser", mock.Anything, user.ID.String()).Return(user, nil)

		recorder := doJSON(router, http.MethodGet, "/v1/users/"+user.ID.String(), nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), user.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)

		useCase.On("GetUser", mock.Anything, "not-a-uuid").
			Return(nil, domain.ErrUserNotFound)

		recorder := doJSON(router, http.MethodGet, "/v1/users/not-a-uuid", nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestUserHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)
		user := testUser(t)

		expectedParams := pagination.Params{Page: 2, Limit: 5, SortOrder: pagination.SortOrderDesc}
		useCase.On("ListUsers", mock.Anything, expectedParams).
			Return([]*domain.User{user}, pagination.NewMeta(2, 5, 11), nil)

		recorder := doJSON(router, http.MethodGet, "/v1/users?page=2&limit=5", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Data []map[string]any `json:"data"`
			Meta pagination.Meta  `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
		assert.Equal(t, 11, response.Meta.Total)
		assert.Equal(t, 3, response.Meta.TotalPages)
		assert.True(t, response.Meta.HasPrev)
	})

	t.Run("InvalidPagination", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)

		recorder := doJSON(router, http.MethodGet, "/v1/users?page=abc", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "ListUsers")
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)
		user := testUser(t)
		name := "Jane Doe"

		useCase.On("UpdateUser", mock.Anything, user.ID.String(), usecase.UpdateUserInput{
			Name: &name,
		}).Return(user, nil)

		recorder := doJSON(router, http.MethodPatch, "/v1/users/"+user.ID.String(), gin.H{
			"name": "Jane Doe",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)

		recorder := doJSON(router, http.MethodPatch, "/v1/users/some-id", gin.H{
			"password": "weak",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		useCase.AssertNotCalled(t, "UpdateUser")
	})

	t.Run("NotFound", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)
		id := domain.NewUserID().String()

		useCase.On("UpdateUser", mock.Anything, id, mock.Anything).
			Return(nil, domain.ErrUserNotFound)

		recorder := doJSON(router, http.MethodPatch, "/v1/users/"+id, gin.H{"name": "Jane Doe"})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("ReturnsDeletedUser", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)
		user := testUser(t)

		useCase.On("DeleteUser", mock.Anything, user.ID.String()).Return(user, nil)

		recorder := doJSON(router, http.MethodDelete, "/v1/users/"+user.ID.String(), nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), user.ID.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		useCase := &MockUserUseCase{}
		router := newUserRouter(useCase)
		id := domain.NewUserID().String()

		useCase.On("DeleteUser", mock.Anything, id).
			Return(nil, apperrors.Wrap(domain.ErrUserNotFound, "delete user"))

		recorder := doJSON(router, http.MethodDelete, "/v1/users/"+id, nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
