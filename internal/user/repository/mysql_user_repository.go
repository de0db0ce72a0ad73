package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/atelierhq/backend/internal/database"
	"github.com/atelierhq/backend/internal/user/domain"

	apperrors "github.com/atelierhq/backend/internal/errors"
)

// MySQLUserRepository handles user persistence for MySQL.
// UUIDs are stored as BINARY(16) columns.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, name, email, password, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, user.Name, user.Email, user.Password, user.IsActive)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, is_active, created_at, updated_at
			  FROM users WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var user domain.User
	var idBytes []byte
	err = querier.QueryRowContext(ctx, query, uuidBytes).Scan(
		&idBytes, &user.Name, &user.Email, &user.Password, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, is_active, created_at, updated_at
			  FROM users WHERE email = ?`

	var user domain.User
	var idBytes []byte
	err := querier.QueryRowContext(ctx, query, email).Scan(
		&idBytes, &user.Name, &user.Email, &user.Password, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &user, nil
}

// GetByIDWithRoles retrieves a user by ID together with the resolved
// role and permission sets.
func (r *MySQLUserRepository) GetByIDWithRoles(
	ctx context.Context,
	id uuid.UUID,
) (*domain.UserWithRoles, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.resolveRoles(ctx, user)
}

// GetByEmailWithRoles retrieves a user by email together with the
// resolved role and permission sets.
func (r *MySQLUserRepository) GetByEmailWithRoles(
	ctx context.Context,
	email string,
) (*domain.UserWithRoles, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return r.resolveRoles(ctx, user)
}

// resolveRoles loads the roles assigned to the user and the distinct
// permissions granted transitively through those roles.
func (r *MySQLUserRepository) resolveRoles(
	ctx context.Context,
	user *domain.User,
) (*domain.UserWithRoles, error) {
	querier := database.GetTx(ctx, r.db)

	userIDBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rolesQuery := `SELECT r.id, r.name, r.description, r.created_at
				   FROM roles r
				   JOIN user_roles ur ON ur.role_id = r.id
				   WHERE ur.user_id = ?
				   ORDER BY r.name`

	rows, err := querier.QueryContext(ctx, rolesQuery, userIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user roles")
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		var idBytes []byte
		if err := rows.Scan(&idBytes, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		if err := role.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user roles")
	}

	permissionsQuery := `SELECT DISTINCT p.id, p.name, p.resource, p.action, p.created_at
						 FROM permissions p
						 JOIN role_permissions rp ON rp.permission_id = p.id
						 JOIN user_roles ur ON ur.role_id = rp.role_id
						 WHERE ur.user_id = ?
						 ORDER BY p.name`

	permRows, err := querier.QueryContext(ctx, permissionsQuery, userIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user permissions")
	}
	defer permRows.Close()

	var permissions []domain.Permission
	for permRows.Next() {
		var permission domain.Permission
		var idBytes []byte
		err := permRows.Scan(
			&idBytes,
			&permission.Name,
			&permission.Resource,
			&permission.Action,
			&permission.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission")
		}
		if err := permission.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		permissions = append(permissions, permission)
	}
	if err := permRows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user permissions")
	}

	return &domain.UserWithRoles{
		User:        *user,
		Roles:       roles,
		Permissions: permissions,
	}, nil
}

// List retrieves users ordered by creation time with offset/limit pagination.
func (r *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, is_active, created_at, updated_at
			  FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		var idBytes []byte
		err := rows.Scan(
			&idBytes, &user.Name, &user.Email, &user.Password, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		if err := user.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}

// Update modifies an existing user's name, password, and active flag.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET name = ?, password = ?, is_active = ?, updated_at = NOW()
			  WHERE id = ?`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, user.Name, user.Password, user.IsActive, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// AssignRole grants a role to a user.
func (r *MySQLUserRepository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	roleIDBytes, err := roleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, userIDBytes, roleIDBytes)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyAssigned
		}
		return apperrors.Wrap(err, "failed to assign role")
	}
	return nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
