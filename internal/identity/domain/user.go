// Package domain defines the core entities of the identity area.
package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
	appValidation "github.com/viralspark/gateway/internal/validation"
)

// User is a registered account that can authenticate against the gateway.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate validates the User fields.
func (u *User) Validate() error {
	err := validation.ValidateStruct(u,
		validation.Field(&u.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
		),
		validation.Field(&u.PasswordHash,
			validation.Required.Error("password hash is required"),
		),
		validation.Field(&u.Role,
			validation.Required.Error("role is required"),
			validation.In(registryDomain.RoleUser, registryDomain.RoleAdmin).
				Error("role must be user or admin"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Identity is the authenticated caller as seen by the access gate. It carries
// only what admission decisions need.
type Identity struct {
	SubjectID string
	Role      string
	Active    bool
}

// IdentityFromUser projects a stored user into a gate identity.
func IdentityFromUser(user *User) *Identity {
	return &Identity{
		SubjectID: user.ID.String(),
		Role:      user.Role,
		Active:    user.Active,
	}
}

// CreateUserInput carries the fields needed to register a user.
type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates the CreateUserInput fields.
func (c *CreateUserInput) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
		),
		validation.Field(&c.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
		validation.Field(&c.Role,
			validation.Required.Error("role is required"),
			validation.In(registryDomain.RoleUser, registryDomain.RoleAdmin).
				Error("role must be user or admin"),
		),
	)
	return appValidation.WrapValidationError(err)
}
