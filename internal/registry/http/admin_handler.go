// Package http provides HTTP handlers for the admin control surface.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viralspark/gateway/internal/httputil"
	"github.com/viralspark/gateway/internal/registry/http/dto"
	registryUseCase "github.com/viralspark/gateway/internal/registry/usecase"
)

// AdminHandler handles HTTP requests for capability administration.
//
// All routes behind this handler run through the access gate with the admin
// capability, so the handlers never re-check roles.
type AdminHandler struct {
	capabilityUseCase registryUseCase.CapabilityUseCase
	adminUseCase      registryUseCase.AdminUseCase
	logger            *slog.Logger
}

// NewAdminHandler creates a new capability administration handler.
func NewAdminHandler(
	capabilityUseCase registryUseCase.CapabilityUseCase,
	adminUseCase registryUseCase.AdminUseCase,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		capabilityUseCase: capabilityUseCase,
		adminUseCase:      adminUseCase,
		logger:            logger,
	}
}

// ListCapabilitiesHandler lists all capabilities with live usage aggregates.
// GET /v1/admin/capabilities - Admin capability required.
func (h *AdminHandler) ListCapabilitiesHandler(c *gin.Context) {
	projections, err := h.adminUseCase.ListCapabilities(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.CapabilityListResponse{
		Capabilities: make([]dto.CapabilityUsageResponse, 0, len(projections)),
	}
	for _, projection := range projections {
		response.Capabilities = append(response.Capabilities, dto.MapProjectionToResponse(projection))
	}

	c.JSON(http.StatusOK, response)
}

// SetEnabledHandler enables or disables a capability.
// PUT /v1/admin/capabilities/:name/enabled - Admin capability required.
// Takes effect on the next gate decision; no restart needed.
func (h *AdminHandler) SetEnabledHandler(c *gin.Context) {
	name := c.Param("name")

	var req dto.SetCapabilityEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	capability, err := h.capabilityUseCase.SetEnabled(c.Request.Context(), name, *req.Enabled)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("capability toggled",
		slog.String("capability", name),
		slog.Bool("enabled", *req.Enabled))

	c.JSON(http.StatusOK, dto.MapCapabilityToResponse(capability))
}

// UpdatePolicyHandler replaces a capability's rate limit policy.
// PUT /v1/admin/capabilities/:name/policy - Admin capability required.
// Calls admitted under the old policy keep counting against the new window.
func (h *AdminHandler) UpdatePolicyHandler(c *gin.Context) {
	name := c.Param("name")

	var req dto.UpdateCapabilityPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	capability, err := h.capabilityUseCase.UpdatePolicy(c.Request.Context(), name, req.ToPolicy())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("capability policy updated",
		slog.String("capability", name),
		slog.Int("count", req.Count),
		slog.Int("window_seconds", req.WindowSeconds))

	c.JSON(http.StatusOK, dto.MapCapabilityToResponse(capability))
}

// StatsHandler returns system-wide activity counters.
// GET /v1/admin/stats - Admin capability required.
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := h.adminUseCase.Stats(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalUsers:    stats.TotalUsers,
		ActiveUsers:   stats.ActiveUsers,
		APICallsToday: stats.APICallsToday,
		Capabilities:  stats.Capabilities,
	})
}
