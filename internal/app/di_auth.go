package app

import (
	"fmt"

	authHTTP "github.com/allisson/taskhub/internal/auth/http"
	"github.com/allisson/taskhub/internal/auth/service"
	authUsecase "github.com/allisson/taskhub/internal/auth/usecase"
)

// TokenService returns the JWT token service instance.
func (c *Container) TokenService() (service.TokenService, error) {
	c.features.tokenServiceInit.Do(func() {
		tokenService, err := service.NewJWTTokenService(c.config.JWTSecret, c.config.JWTExpiration)
		if err != nil {
			c.initErrors["tokenService"] = fmt.Errorf("failed to create token service: %w", err)
			return
		}
		c.features.tokenService = tokenService
	})
	if err, exists := c.initErrors["tokenService"]; exists {
		return nil, err
	}
	return c.features.tokenService, nil
}

// AuthUseCase returns the auth use case instance.
func (c *Container) AuthUseCase() (authUsecase.AuthUseCase, error) {
	c.features.authUseCaseInit.Do(func() {
		useCase, err := c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		c.features.authUseCase = useCase
	})
	if err, exists := c.initErrors["authUseCase"]; exists {
		return nil, err
	}
	return c.features.authUseCase, nil
}

// LoginHandler returns the login HTTP handler instance.
func (c *Container) LoginHandler() (*authHTTP.LoginHandler, error) {
	c.features.loginHandlerInit.Do(func() {
		handler, err := c.initLoginHandler()
		if err != nil {
			c.initErrors["loginHandler"] = err
			return
		}
		c.features.loginHandler = handler
	})
	if err, exists := c.initErrors["loginHandler"]; exists {
		return nil, err
	}
	return c.features.loginHandler, nil
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUsecase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for auth use case: %w", err)
	}

	baseUseCase, err := authUsecase.NewAuthUseCase(userRepo, tokenService)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth use case: %w", err)
	}

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUsecase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initLoginHandler creates the login HTTP handler with all its dependencies.
func (c *Container) initLoginHandler() (*authHTTP.LoginHandler, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for login handler: %w", err)
	}
	return authHTTP.NewLoginHandler(useCase, c.Logger()), nil
}
