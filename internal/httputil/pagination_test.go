package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          string
		expectedOffset int
		expectedLimit  int
		expectError    bool
	}{
		{
			name:           "defaults",
			query:          "",
			expectedOffset: 0,
			expectedLimit:  50,
		},
		{
			name:           "custom offset and limit",
			query:          "?offset=10&limit=25",
			expectedOffset: 10,
			expectedLimit:  25,
		},
		{
			name:          "max limit",
			query:         "?limit=100",
			expectedLimit: 100,
		},
		{
			name:        "negative offset",
			query:       "?offset=-1",
			expectError: true,
		},
		{
			name:        "limit above max",
			query:       "?limit=101",
			expectError: true,
		},
		{
			name:        "zero limit",
			query:       "?limit=0",
			expectError: true,
		},
		{
			name:        "non-numeric offset",
			query:       "?offset=abc",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test"+tt.query, nil)

			offset, limit, err := ParsePagination(c)

			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOffset, offset)
			assert.Equal(t, tt.expectedLimit, limit)
		})
	}
}
