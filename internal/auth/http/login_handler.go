package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/taskhub/internal/auth/http/dto"
	authUseCase "github.com/allisson/taskhub/internal/auth/usecase"
	"github.com/allisson/taskhub/internal/httputil"
)

// LoginHandler handles authentication HTTP requests
type LoginHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler exchanges valid credentials for an access token.
// POST /v1/auth/login - Returns 200 OK with the token, 401 on bad credentials.
func (h *LoginHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), dto.ToLoginInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoginResponse(output))
}
