// Package usecase defines business logic interfaces for the identity area.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *identityDomain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*identityDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*identityDomain.User, error)

	// SetActive flips a user's active flag. Returns ErrUserNotFound if not found.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// CountUsers returns the total and active user counts.
	CountUsers(ctx context.Context) (total int64, active int64, err error)
}

// UserUseCase manages user accounts.
type UserUseCase interface {
	// Register creates a new user from validated input, hashing the password.
	Register(ctx context.Context, input *identityDomain.CreateUserInput) (*identityDomain.User, error)

	// SetActive activates or deactivates a user. Deactivation takes effect on
	// the next gate decision; no token revocation is needed.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*identityDomain.User, error)

	// CountUsers returns the total and active user counts.
	CountUsers(ctx context.Context) (total int64, active int64, err error)
}

// LoginOutput is the result of a successful login.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *identityDomain.User
}

// AuthUseCase authenticates callers.
type AuthUseCase interface {
	// Login verifies credentials and issues a bearer token. Returns
	// ErrInvalidCredentials for an unknown email or wrong password, without
	// revealing which.
	Login(ctx context.Context, email string, password string) (*LoginOutput, error)

	// Authenticate verifies a bearer token and loads the caller's identity.
	// The identity is returned even when inactive: the gate owns the
	// active-account check so deactivation denies with the right status.
	Authenticate(ctx context.Context, token string) (*identityDomain.Identity, error)
}
