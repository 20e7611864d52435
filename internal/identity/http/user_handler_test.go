package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	identityMocks "github.com/viralspark/gateway/internal/identity/usecase/mocks"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

func TestUserHandlerSetActive(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())

	newRouter := func(mockUsers *identityMocks.MockUserUseCase) *gin.Engine {
		handler := NewUserHandler(mockUsers, testLogger())
		router := gin.New()
		router.PUT("/v1/admin/users/:id/active", handler.SetActiveHandler)
		return router
	}

	t.Run("deactivates a user", func(t *testing.T) {
		mockUsers := new(identityMocks.MockUserUseCase)
		mockUsers.On("SetActive", mock.Anything, userID, false).
			Return(&identityDomain.User{
				ID:        userID,
				Email:     "alice@example.com",
				Role:      registryDomain.RoleUser,
				Active:    false,
				CreatedAt: time.Now().UTC(),
				UpdatedAt: time.Now().UTC(),
			}, nil)

		router := newRouter(mockUsers)
		recorder := performRequest(router, http.MethodPut,
			"/v1/admin/users/"+userID.String()+"/active",
			map[string]bool{"active": false})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"active":false`)
		assert.Contains(t, recorder.Body.String(), userID.String())
		mockUsers.AssertExpectations(t)
	})

	t.Run("reactivates a user", func(t *testing.T) {
		mockUsers := new(identityMocks.MockUserUseCase)
		mockUsers.On("SetActive", mock.Anything, userID, true).
			Return(&identityDomain.User{
				ID:     userID,
				Email:  "alice@example.com",
				Role:   registryDomain.RoleUser,
				Active: true,
			}, nil)

		router := newRouter(mockUsers)
		recorder := performRequest(router, http.MethodPut,
			"/v1/admin/users/"+userID.String()+"/active",
			map[string]bool{"active": true})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"active":true`)
	})

	t.Run("invalid UUID returns 422", func(t *testing.T) {
		mockUsers := new(identityMocks.MockUserUseCase)
		router := newRouter(mockUsers)

		recorder := performRequest(router, http.MethodPut,
			"/v1/admin/users/not-a-uuid/active",
			map[string]bool{"active": false})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		mockUsers.AssertNotCalled(t, "SetActive")
	})

	t.Run("missing active field fails validation", func(t *testing.T) {
		mockUsers := new(identityMocks.MockUserUseCase)
		router := newRouter(mockUsers)

		recorder := performRequest(router, http.MethodPut,
			"/v1/admin/users/"+userID.String()+"/active",
			map[string]string{})

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "active")
		mockUsers.AssertNotCalled(t, "SetActive")
	})

	t.Run("unknown user returns 404", func(t *testing.T) {
		mockUsers := new(identityMocks.MockUserUseCase)
		mockUsers.On("SetActive", mock.Anything, userID, false).
			Return(nil, identityDomain.ErrUserNotFound)

		router := newRouter(mockUsers)
		recorder := performRequest(router, http.MethodPut,
			"/v1/admin/users/"+userID.String()+"/active",
			map[string]bool{"active": false})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "not_found")
	})
}
