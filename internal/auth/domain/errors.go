package domain

import (
	"github.com/atelierhq/backend/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrAccessDenied indicates the authenticated principal does not hold any
	// of the roles a resource requires.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied")
)
