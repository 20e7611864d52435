package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	identityMocks "github.com/viralspark/gateway/internal/identity/usecase/mocks"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

func TestRunCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	userID := uuid.New()

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &identityMocks.MockUserUseCase{}
		input := &identityDomain.CreateUserInput{
			Email:    "alice@example.com",
			Password: "password123",
			Role:     registryDomain.RoleUser,
		}
		user := &identityDomain.User{
			ID:        userID,
			Email:     "alice@example.com",
			Role:      registryDomain.RoleUser,
			Active:    true,
			CreatedAt: time.Now(),
		}
		mockUseCase.On("Register", ctx, input).Return(user, nil)

		var out bytes.Buffer
		err := RunCreateUser(
			ctx,
			mockUseCase,
			logger,
			&out,
			"alice@example.com",
			"password123",
			registryDomain.RoleUser,
			"text",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), "User created successfully")
		require.Contains(t, out.String(), userID.String())
		require.Contains(t, out.String(), "alice@example.com")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &identityMocks.MockUserUseCase{}
		user := &identityDomain.User{
			ID:     userID,
			Email:  "bob@example.com",
			Role:   registryDomain.RoleAdmin,
			Active: true,
		}
		mockUseCase.On("Register", ctx, &identityDomain.CreateUserInput{
			Email:    "bob@example.com",
			Password: "password123",
			Role:     registryDomain.RoleAdmin,
		}).Return(user, nil)

		var out bytes.Buffer
		err := RunCreateUser(
			ctx,
			mockUseCase,
			logger,
			&out,
			"bob@example.com",
			"password123",
			registryDomain.RoleAdmin,
			"json",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), `"email": "bob@example.com"`)
		require.Contains(t, out.String(), `"role": "admin"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("register-error", func(t *testing.T) {
		mockUseCase := &identityMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, &identityDomain.CreateUserInput{
			Email:    "dup@example.com",
			Password: "password123",
			Role:     registryDomain.RoleUser,
		}).Return(nil, identityDomain.ErrUserExists)

		var out bytes.Buffer
		err := RunCreateUser(
			ctx,
			mockUseCase,
			logger,
			&out,
			"dup@example.com",
			"password123",
			registryDomain.RoleUser,
			"text",
		)

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create user")
		mockUseCase.AssertExpectations(t)
	})
}
