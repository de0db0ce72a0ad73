package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/atelierhq/backend/internal/user/domain"
	apperrors "github.com/atelierhq/backend/internal/errors"
)

// seedPermission describes one entry of the default permission catalog.
type seedPermission struct {
	name     string
	resource string
	action   string
}

// seedRole describes one entry of the default role catalog together
// with the permission names it grants.
type seedRole struct {
	name        string
	description string
	permissions []string
}

// defaultPermissions is the catalog of permissions created by Seed.
var defaultPermissions = []seedPermission{
	{"users:read", "users", "read"},
	{"users:create", "users", "create"},
	{"users:update", "users", "update"},
	{"users:delete", "users", "delete"},
	{"roles:read", "roles", "read"},
	{"roles:assign", "roles", "assign"},
	{"permissions:read", "permissions", "read"},
	{"system:admin", "system", "admin"},
}

// defaultRoles is the catalog of roles created by Seed.
var defaultRoles = []seedRole{
	{
		name:        "admin",
		description: "Full administrative access",
		permissions: []string{
			"users:read", "users:create", "users:update", "users:delete",
			"roles:read", "roles:assign", "permissions:read", "system:admin",
		},
	},
	{
		name:        "moderator",
		description: "Moderation access to user content",
		permissions: []string{
			"users:read", "users:update", "roles:read", "permissions:read",
		},
	},
	{
		name:        "user",
		description: "Standard account access",
		permissions: []string{"users:read"},
	},
}

// Seed creates the default role and permission catalog inside a single
// transaction. Existing entries are left untouched so the command can be
// re-run after adding new catalog entries.
func (uc *UserUseCase) Seed(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		permissionIDs := make(map[string]uuid.UUID, len(defaultPermissions))

		for _, entry := range defaultPermissions {
			existing, err := uc.roleRepo.GetPermissionByName(ctx, entry.name)
			if err == nil {
				permissionIDs[entry.name] = existing.ID
				continue
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}

			permission := &domain.Permission{
				ID:       uuid.Must(uuid.NewV7()),
				Name:     entry.name,
				Resource: entry.resource,
				Action:   entry.action,
			}
			if err := uc.roleRepo.CreatePermission(ctx, permission); err != nil {
				return err
			}
			permissionIDs[entry.name] = permission.ID
		}

		for _, entry := range defaultRoles {
			role, err := uc.roleRepo.GetByName(ctx, entry.name)
			if errors.Is(err, apperrors.ErrNotFound) {
				role = &domain.Role{
					ID:          uuid.Must(uuid.NewV7()),
					Name:        entry.name,
					Description: entry.description,
				}
				if err := uc.roleRepo.Create(ctx, role); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			for _, permissionName := range entry.permissions {
				if err := uc.roleRepo.GrantPermission(ctx, role.ID, permissionIDs[permissionName]); err != nil {
					return err
				}
			}
		}

		return nil
	})
}
