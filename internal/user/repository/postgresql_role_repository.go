package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/atelierhq/backend/internal/database"
	"github.com/atelierhq/backend/internal/user/domain"

	apperrors "github.com/atelierhq/backend/internal/errors"
)

// PostgreSQLRoleRepository handles role and permission persistence for PostgreSQL.
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoleRepository creates a new PostgreSQLRoleRepository.
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{
		db: db,
	}
}

// Create inserts a new role.
func (r *PostgreSQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO roles (id, name, description, created_at) VALUES ($1, $2, $3, NOW())`

	_, err := querier.ExecContext(ctx, query, role.ID, role.Name, role.Description)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// GetByName retrieves a role by its unique name.
func (r *PostgreSQLRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at FROM roles WHERE name = $1`

	var role domain.Role
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&role.ID, &role.Name, &role.Description, &role.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name")
	}

	return &role, nil
}

// List retrieves all roles ordered by name.
func (r *PostgreSQLRoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at FROM roles ORDER BY name`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

// CreatePermission inserts a new permission.
func (r *PostgreSQLRoleRepository) CreatePermission(
	ctx context.Context,
	permission *domain.Permission,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO permissions (id, name, resource, action, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		permission.ID,
		permission.Name,
		permission.Resource,
		permission.Action,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrPermissionAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// GetPermissionByName retrieves a permission by its unique name.
func (r *PostgreSQLRoleRepository) GetPermissionByName(
	ctx context.Context,
	name string,
) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, resource, action, created_at FROM permissions WHERE name = $1`

	var permission domain.Permission
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&permission.ID, &permission.Name, &permission.Resource, &permission.Action, &permission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "permission not found")
		}
		return nil, apperrors.Wrap(err, "failed to get permission by name")
	}

	return &permission, nil
}

// GrantPermission grants a permission to a role. Granting an already
// granted permission is not an error.
func (r *PostgreSQLRoleRepository) GrantPermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`

	_, err := querier.ExecContext(ctx, query, roleID, permissionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to grant permission")
	}
	return nil
}
