package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	identityService "github.com/viralspark/gateway/internal/identity/service"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	userRepo        UserRepository
	passwordService identityService.PasswordService
	tokenService    identityService.TokenService
}

// Login verifies credentials and issues a bearer token.
func (a *authUseCase) Login(
	ctx context.Context,
	email string,
	password string,
) (*LoginOutput, error) {
	user, err := a.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identityDomain.ErrUserNotFound) {
			return nil, identityDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.ComparePassword(password, user.PasswordHash) {
		return nil, identityDomain.ErrInvalidCredentials
	}

	if !user.Active {
		// Deactivated accounts cannot obtain fresh tokens.
		return nil, identityDomain.ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokenService.IssueToken(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Authenticate verifies a bearer token and loads the caller's identity.
func (a *authUseCase) Authenticate(
	ctx context.Context,
	token string,
) (*identityDomain.Identity, error) {
	claims, err := a.tokenService.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.SubjectID)
	if err != nil {
		return nil, identityDomain.ErrInvalidToken
	}

	user, err := a.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, identityDomain.ErrUserNotFound) {
			return nil, identityDomain.ErrInvalidToken
		}
		return nil, err
	}

	// The stored role wins over the token claim so role changes apply
	// without reissuing tokens.
	return identityDomain.IdentityFromUser(user), nil
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	userRepo UserRepository,
	passwordService identityService.PasswordService,
	tokenService identityService.TokenService,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}
