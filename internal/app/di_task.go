package app

import (
	"fmt"

	taskHTTP "github.com/allisson/taskhub/internal/task/http"
	taskRepository "github.com/allisson/taskhub/internal/task/repository"
	taskUsecase "github.com/allisson/taskhub/internal/task/usecase"
)

// TaskRepository returns the task repository instance.
func (c *Container) TaskRepository() (taskUsecase.TaskRepository, error) {
	c.features.taskRepoInit.Do(func() {
		repo, err := c.initTaskRepository()
		if err != nil {
			c.initErrors["taskRepo"] = err
			return
		}
		c.features.taskRepo = repo
	})
	if err, exists := c.initErrors["taskRepo"]; exists {
		return nil, err
	}
	return c.features.taskRepo, nil
}

// TaskUseCase returns the task use case instance.
func (c *Container) TaskUseCase() (taskUsecase.UseCase, error) {
	c.features.taskUseCaseInit.Do(func() {
		useCase, err := c.initTaskUseCase()
		if err != nil {
			c.initErrors["taskUseCase"] = err
			return
		}
		c.features.taskUseCase = useCase
	})
	if err, exists := c.initErrors["taskUseCase"]; exists {
		return nil, err
	}
	return c.features.taskUseCase, nil
}

// TaskHandler returns the task HTTP handler instance.
func (c *Container) TaskHandler() (*taskHTTP.TaskHandler, error) {
	c.features.taskHandlerInit.Do(func() {
		handler, err := c.initTaskHandler()
		if err != nil {
			c.initErrors["taskHandler"] = err
			return
		}
		c.features.taskHandler = handler
	})
	if err, exists := c.initErrors["taskHandler"]; exists {
		return nil, err
	}
	return c.features.taskHandler, nil
}

// initTaskRepository creates the task repository based on the database driver.
func (c *Container) initTaskRepository() (taskUsecase.TaskRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for task repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return taskRepository.NewMySQLTaskRepository(db), nil
	case "postgres":
		return taskRepository.NewPostgreSQLTaskRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTaskUseCase creates the task use case with all its dependencies.
func (c *Container) initTaskUseCase() (taskUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for task use case: %w", err)
	}

	taskRepo, err := c.TaskRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get task repository for task use case: %w", err)
	}

	baseUseCase := taskUsecase.NewTaskUseCase(txManager, taskRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for task use case: %w", err)
		}
		return taskUsecase.NewTaskUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTaskHandler creates the task HTTP handler with all its dependencies.
func (c *Container) initTaskHandler() (*taskHTTP.TaskHandler, error) {
	useCase, err := c.TaskUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get task use case for task handler: %w", err)
	}
	return taskHTTP.NewTaskHandler(useCase, c.Logger()), nil
}
