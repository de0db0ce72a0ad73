// Package domain defines the core user domain entities and types.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/backend/internal/errors"
)

// User represents an account identity in the system.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string // argon2id digest, never the plaintext
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Role is a named bundle of permissions assignable to a user.
// Role names are unique and form the vocabulary used by route-level
// access declarations.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// Permission is an atomic resource+action capability grant, surfaced to
// callers informationally and resolvable through the role graph.
type Permission struct {
	ID        uuid.UUID
	Name      string
	Resource  string
	Action    string
	CreatedAt time.Time
}

// UserWithRoles is a user together with the role and permission sets
// resolved from the role graph at read time. The sets are never cached
// across requests so that role changes take effect immediately.
type UserWithRoles struct {
	User
	Roles       []Role
	Permissions []Permission
}

// RoleNames returns the flattened set of role names held by the user.
func (u *UserWithRoles) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// NormalizeRoleName lowercases and trims a role name so that lookups
// and comparisons are exact after normalization.
func NormalizeRoleName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeEmail lowercases and trims an email address so that lookups
// behave the same regardless of how the address was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrRoleNotFound indicates the requested role does not exist.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrRoleAlreadyExists indicates a role with the same name already exists.
	ErrRoleAlreadyExists = errors.Wrap(errors.ErrConflict, "role already exists")

	// ErrPermissionAlreadyExists indicates a permission with the same name already exists.
	ErrPermissionAlreadyExists = errors.Wrap(errors.ErrConflict, "permission already exists")

	// ErrRoleAlreadyAssigned indicates the user already holds the role.
	ErrRoleAlreadyAssigned = errors.Wrap(errors.ErrConflict, "role already assigned to user")
)
