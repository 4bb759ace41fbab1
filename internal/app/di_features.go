package app

import (
	"sync"

	authHTTP "github.com/allisson/taskhub/internal/auth/http"
	"github.com/allisson/taskhub/internal/auth/service"
	authUsecase "github.com/allisson/taskhub/internal/auth/usecase"
	taskHTTP "github.com/allisson/taskhub/internal/task/http"
	taskUsecase "github.com/allisson/taskhub/internal/task/usecase"
	userHTTP "github.com/allisson/taskhub/internal/user/http"
	userUsecase "github.com/allisson/taskhub/internal/user/usecase"
)

// featureComponents groups the per-feature repositories, use cases and
// handlers, each guarded by its own sync.Once.
type featureComponents struct {
	userRepo    userUsecase.UserRepository
	userUseCase userUsecase.UseCase
	userHandler *userHTTP.UserHandler

	taskRepo    taskUsecase.TaskRepository
	taskUseCase taskUsecase.UseCase
	taskHandler *taskHTTP.TaskHandler

	tokenService service.TokenService
	authUseCase  authUsecase.AuthUseCase
	loginHandler *authHTTP.LoginHandler

	userRepoInit     sync.Once
	userUseCaseInit  sync.Once
	userHandlerInit  sync.Once
	taskRepoInit     sync.Once
	taskUseCaseInit  sync.Once
	taskHandlerInit  sync.Once
	tokenServiceInit sync.Once
	authUseCaseInit  sync.Once
	loginHandlerInit sync.Once
}
