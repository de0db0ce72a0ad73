// Package repository provides data persistence implementations for user,
// role, and permission entities.
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

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, name, email, password, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Password, user.IsActive)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, is_active, created_at, updated_at
			  FROM users WHERE id = $1`

	var user domain.User
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, is_active, created_at, updated_at
			  FROM users WHERE email = $1`

	var user domain.User
	err := querier.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return &user, nil
}

// GetByIDWithRoles retrieves a user by ID together with the role and
// permission sets resolved from the role graph. The sets are re-read on
// every call so revocations take effect on the next request.
func (r *PostgreSQLUserRepository) GetByIDWithRoles(
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
func (r *PostgreSQLUserRepository) GetByEmailWithRoles(
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
func (r *PostgreSQLUserRepository) resolveRoles(
	ctx context.Context,
	user *domain.User,
) (*domain.UserWithRoles, error) {
	querier := database.GetTx(ctx, r.db)

	rolesQuery := `SELECT r.id, r.name, r.description, r.created_at
				   FROM roles r
				   JOIN user_roles ur ON ur.role_id = r.id
				   WHERE ur.user_id = $1
				   ORDER BY r.name`

	rows, err := querier.QueryContext(ctx, rolesQuery, user.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user roles")
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
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
						 WHERE ur.user_id = $1
						 ORDER BY p.name`

	permRows, err := querier.QueryContext(ctx, permissionsQuery, user.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get user permissions")
	}
	defer permRows.Close()

	var permissions []domain.Permission
	for permRows.Next() {
		var permission domain.Permission
		err := permRows.Scan(
			&permission.ID,
			&permission.Name,
			&permission.Resource,
			&permission.Action,
			&permission.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission")
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
func (r *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, password, is_active, created_at, updated_at
			  FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Password, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}

// Update modifies an existing user's name, password, and active flag.
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET name = $1, password = $2, is_active = $3, updated_at = NOW()
			  WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, user.Name, user.Password, user.IsActive, user.ID)
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
func (r *PostgreSQLUserRepository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`

	_, err := querier.ExecContext(ctx, query, userID, roleID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyAssigned
		}
		return apperrors.Wrap(err, "failed to assign role")
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
