package domain

import (
	"github.com/viralspark/gateway/internal/errors"
)

// Identity errors.
var (
	// ErrUserNotFound indicates a user with the specified ID or email was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserExists indicates a user with the specified email already exists.
	ErrUserExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidCredentials indicates a login with an unknown email or wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates a bearer token that failed verification.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")
)
