package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/viralspark/gateway/internal/httputil"
	"github.com/viralspark/gateway/internal/identity/http/dto"
	identityUseCase "github.com/viralspark/gateway/internal/identity/usecase"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	userUseCase identityUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user administration handler.
func NewUserHandler(userUseCase identityUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// SetActiveHandler activates or deactivates a user account.
// PUT /v1/admin/users/:id/active - Admin capability required.
// Returns 200 OK with the updated user. Deactivation takes effect on the next
// gate decision; already-issued tokens stop working without revocation.
func (h *UserHandler) SetActiveHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.SetActive(c.Request.Context(), userID, *req.Active)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}
