package domain

import (
	"github.com/viralspark/gateway/internal/errors"
)

// Capability registry errors.
var (
	// ErrCapabilityNotFound indicates a capability with the specified name was not found.
	ErrCapabilityNotFound = errors.Wrap(errors.ErrNotFound, "capability not found")

	// ErrCapabilityExists indicates a capability with the specified name already exists.
	ErrCapabilityExists = errors.Wrap(errors.ErrConflict, "capability already exists")

	// ErrInvalidPolicy indicates a rate limit policy with a non-positive count or window.
	ErrInvalidPolicy = errors.Wrap(errors.ErrInvalidInput, "invalid rate limit policy")

	// ErrInvalidCapability indicates a capability missing its name or role list.
	ErrInvalidCapability = errors.Wrap(errors.ErrInvalidInput, "invalid capability")
)
