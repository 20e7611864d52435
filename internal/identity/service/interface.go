// Package service provides technical services for identity operations.
//
// This package implements password hashing and bearer token handling used by
// the identity use cases.
package service

import (
	"time"
)

// PasswordService defines operations for password hashing and verification.
// Implementations must use an industry-standard slow hash (e.g., argon2).
type PasswordService interface {
	// HashPassword hashes a plain text password.
	HashPassword(plainPassword string) (hashedPassword string, err error)

	// ComparePassword compares a plain text password against a stored hash.
	// This is constant-time to prevent timing attacks.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	SubjectID string
	Role      string
}

// TokenService defines operations for signed bearer tokens.
type TokenService interface {
	// IssueToken creates a signed token for the subject. Returns the token
	// and its expiry.
	IssueToken(subjectID string, role string) (token string, expiresAt time.Time, err error)

	// VerifyToken validates a token's signature and expiry and returns its
	// claims. Returns ErrInvalidToken for anything unverifiable.
	VerifyToken(token string) (*TokenClaims, error)
}
