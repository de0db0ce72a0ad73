package domain

import (
	"github.com/google/uuid"
)

// Principal is an authenticated caller with its current roles and
// permissions, resolved from storage at authentication time. Role claims
// embedded in tokens are never used for authorization decisions.
type Principal struct {
	ID          uuid.UUID
	Email       string
	Name        string
	IsActive    bool
	Roles       []string
	Permissions []string
}

// HasRole reports whether the principal holds the given role. Role names
// are compared in their normalized lowercase form.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize checks a principal against a set of required roles. An empty
// required set always allows, without needing a principal. Otherwise the
// principal must be non-nil, active, and hold at least one of the required
// roles.
func Authorize(principal *Principal, requiredRoles []string) error {
	if len(requiredRoles) == 0 {
		return nil
	}

	if principal == nil || !principal.IsActive {
		return ErrAccessDenied
	}

	for _, required := range requiredRoles {
		if principal.HasRole(required) {
			return nil
		}
	}

	return ErrAccessDenied
}
