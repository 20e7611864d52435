// Package usecase implements business logic orchestration for the identity area.
package usecase

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/viralspark/gateway/internal/errors"
	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	identityService "github.com/viralspark/gateway/internal/identity/service"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo        UserRepository
	passwordService identityService.PasswordService
}

// Register creates a new user from validated input.
func (u *userUseCase) Register(
	ctx context.Context,
	input *identityDomain.CreateUserInput,
) (*identityDomain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := u.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate user ID")
	}

	user := &identityDomain.User{
		ID:           id,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         input.Role,
		Active:       true,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetActive activates or deactivates a user.
func (u *userUseCase) SetActive(
	ctx context.Context,
	id uuid.UUID,
	active bool,
) (*identityDomain.User, error) {
	if err := u.userRepo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	return u.userRepo.GetByID(ctx, id)
}

// CountUsers returns the total and active user counts.
func (u *userUseCase) CountUsers(ctx context.Context) (int64, int64, error) {
	return u.userRepo.CountUsers(ctx)
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	userRepo UserRepository,
	passwordService identityService.PasswordService,
) UserUseCase {
	return &userUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}
