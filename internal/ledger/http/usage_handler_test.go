package http

import (
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

	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
	ledgerMocks "github.com/viralspark/gateway/internal/ledger/usecase/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUsageRouter(mockUsage *ledgerMocks.MockUsageUseCase) *gin.Engine {
	handler := NewUsageHandler(mockUsage, testLogger())
	router := gin.New()
	router.GET("/v1/admin/usage", handler.ListHandler)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestUsageHandlerList(t *testing.T) {
	record := &ledgerDomain.UsageRecord{
		ID:         uuid.Must(uuid.NewV7()),
		SubjectID:  "subject-1",
		Capability: "web_scraping",
		Endpoint:   "/api/scrape",
		Outcome:    ledgerDomain.OutcomeAdmitted,
		ElapsedMS:  12,
		CreatedAt:  time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
	}

	t.Run("lists records with default pagination", func(t *testing.T) {
		mockUsage := new(ledgerMocks.MockUsageUseCase)
		mockUsage.On("List", mock.Anything, ledgerDomain.ListFilter{Offset: 0, Limit: 50}).
			Return([]*ledgerDomain.UsageRecord{record}, nil)

		router := newUsageRouter(mockUsage)
		recorder := get(router, "/v1/admin/usage")

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Records []struct {
				SubjectID  string `json:"subject_id"`
				Capability string `json:"capability"`
				Outcome    string `json:"outcome"`
			} `json:"records"`
			Limit int `json:"limit"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.Len(t, response.Records, 1)
		assert.Equal(t, "subject-1", response.Records[0].SubjectID)
		assert.Equal(t, "admitted", response.Records[0].Outcome)
		assert.Equal(t, 50, response.Limit)
		mockUsage.AssertExpectations(t)
	})

	t.Run("passes filters through", func(t *testing.T) {
		mockUsage := new(ledgerMocks.MockUsageUseCase)
		since := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		mockUsage.On("List", mock.Anything, ledgerDomain.ListFilter{
			SubjectID:  "subject-1",
			Capability: "web_scraping",
			Since:      since,
			Offset:     10,
			Limit:      20,
		}).Return([]*ledgerDomain.UsageRecord{}, nil)

		router := newUsageRouter(mockUsage)
		recorder := get(router,
			"/v1/admin/usage?subject_id=subject-1&capability=web_scraping"+
				"&since=2025-06-15T00:00:00Z&offset=10&limit=20")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"records":[]`)
		mockUsage.AssertExpectations(t)
	})

	t.Run("invalid since returns 400", func(t *testing.T) {
		mockUsage := new(ledgerMocks.MockUsageUseCase)
		router := newUsageRouter(mockUsage)

		recorder := get(router, "/v1/admin/usage?since=yesterday")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockUsage.AssertNotCalled(t, "List")
	})

	t.Run("invalid pagination returns 400", func(t *testing.T) {
		mockUsage := new(ledgerMocks.MockUsageUseCase)
		router := newUsageRouter(mockUsage)

		recorder := get(router, "/v1/admin/usage?limit=5000")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockUsage.AssertNotCalled(t, "List")
	})

	t.Run("repository failure returns 503", func(t *testing.T) {
		mockUsage := new(ledgerMocks.MockUsageUseCase)
		mockUsage.On("List", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		router := newUsageRouter(mockUsage)
		recorder := get(router, "/v1/admin/usage")

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	})
}
