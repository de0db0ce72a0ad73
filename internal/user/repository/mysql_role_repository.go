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

// MySQLRoleRepository handles role and permission persistence for MySQL.
// UUIDs are stored as BINARY(16) columns.
type MySQLRoleRepository struct {
	db *sql.DB
}

// NewMySQLRoleRepository creates a new MySQLRoleRepository.
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{
		db: db,
	}
}

// Create inserts a new role.
func (r *MySQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO roles (id, name, description, created_at) VALUES (?, ?, ?, NOW())`

	uuidBytes, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, role.Name, role.Description)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// GetByName retrieves a role by its unique name.
func (r *MySQLRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, created_at FROM roles WHERE name = ?`

	var role domain.Role
	var idBytes []byte
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes, &role.Name, &role.Description, &role.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name")
	}

	if err := role.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &role, nil
}

// List retrieves all roles ordered by name.
func (r *MySQLRoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
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
		var idBytes []byte
		if err := rows.Scan(&idBytes, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		if err := role.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

// CreatePermission inserts a new permission.
func (r *MySQLRoleRepository) CreatePermission(ctx context.Context, permission *domain.Permission) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO permissions (id, name, resource, action, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	uuidBytes, err := permission.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		uuidBytes,
		permission.Name,
		permission.Resource,
		permission.Action,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrPermissionAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// GetPermissionByName retrieves a permission by its unique name.
func (r *MySQLRoleRepository) GetPermissionByName(
	ctx context.Context,
	name string,
) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, resource, action, created_at FROM permissions WHERE name = ?`

	var permission domain.Permission
	var idBytes []byte
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes, &permission.Name, &permission.Resource, &permission.Action, &permission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "permission not found")
		}
		return nil, apperrors.Wrap(err, "failed to get permission by name")
	}

	if err := permission.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &permission, nil
}

// GrantPermission grants a permission to a role. Granting an already
// granted permission is not an error.
func (r *MySQLRoleRepository) GrantPermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT IGNORE INTO role_permissions (role_id, permission_id) VALUES (?, ?)`

	roleIDBytes, err := roleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	permissionIDBytes, err := permissionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, roleIDBytes, permissionIDBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to grant permission")
	}
	return nil
}
