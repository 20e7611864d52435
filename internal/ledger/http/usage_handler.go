// Package http provides HTTP handlers for the usage ledger.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/viralspark/gateway/internal/httputil"
	"github.com/viralspark/gateway/internal/ledger/http/dto"
	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
	ledgerUseCase "github.com/viralspark/gateway/internal/ledger/usecase"
)

// UsageHandler handles HTTP requests for ledger queries.
type UsageHandler struct {
	usageUseCase ledgerUseCase.UsageUseCase
	logger       *slog.Logger
}

// NewUsageHandler creates a new ledger query handler.
func NewUsageHandler(usageUseCase ledgerUseCase.UsageUseCase, logger *slog.Logger) *UsageHandler {
	return &UsageHandler{
		usageUseCase: usageUseCase,
		logger:       logger,
	}
}

// ListHandler lists usage records, newest first.
// GET /v1/admin/usage - Admin capability required.
//
// Query parameters:
//   - subject_id: filter by subject (optional)
//   - capability: filter by capability name (optional)
//   - since: RFC 3339 lower bound on created_at (optional)
//   - offset, limit: pagination (default 0/50, limit capped at 100)
func (h *UsageHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	filter := ledgerDomain.ListFilter{
		SubjectID:  c.Query("subject_id"),
		Capability: c.Query("capability"),
		Offset:     offset,
		Limit:      limit,
	}

	if sinceStr := c.Query("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			httputil.HandleBadRequestGin(c,
				fmt.Errorf("invalid since parameter: must be an RFC 3339 timestamp"),
				h.logger)
			return
		}
		filter.Since = since
	}

	records, err := h.usageUseCase.List(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsageRecordsToResponse(records, offset, limit))
}
