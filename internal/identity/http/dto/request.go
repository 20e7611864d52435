// Package dto provides data transfer objects for the identity HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/viralspark/gateway/internal/validation"
)

// LoginRequest contains the credentials for token issuance.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(1, 128).Error("password must be between 1 and 128 characters"),
		),
	)
}

// SetUserActiveRequest contains the parameters for toggling a user account.
type SetUserActiveRequest struct {
	Active *bool `json:"active"`
}

// Validate checks if the set-active request is valid.
func (r *SetUserActiveRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Active,
			validation.NotNil.Error("active is required"),
		),
	)
}
