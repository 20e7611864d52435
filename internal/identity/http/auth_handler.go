package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viralspark/gateway/internal/httputil"
	"github.com/viralspark/gateway/internal/identity/http/dto"
	identityUseCase "github.com/viralspark/gateway/internal/identity/usecase"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authUseCase identityUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authUseCase identityUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler exchanges credentials for a bearer token.
// POST /v1/auth/token - Unauthenticated, protected by the login rate limiter.
// Returns 200 OK with the token, or 401 for bad credentials.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: output.Token,
		TokenType:   "Bearer",
		ExpiresAt:   output.ExpiresAt,
	})
}
