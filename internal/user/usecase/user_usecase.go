// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authService "github.com/atelierhq/backend/internal/auth/service"
	"github.com/atelierhq/backend/internal/database"
	"github.com/atelierhq/backend/internal/user/domain"
	appValidation "github.com/atelierhq/backend/internal/validation"
)

// CreateUserInput contains the input data for user creation.
type CreateUserInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UpdateUserInput contains the optional fields for a user update.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// UseCase defines the interface for user business logic operations.
type UseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.UserWithRoles, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.UserWithRoles, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) error
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error

	// Seed creates the default role and permission catalog. It is
	// idempotent so it can be re-run safely.
	Seed(ctx context.Context) error
}

// UserRepository defines user persistence operations.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDWithRoles(ctx context.Context, id uuid.UUID) (*domain.UserWithRoles, error)
	GetByEmailWithRoles(ctx context.Context, email string) (*domain.UserWithRoles, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
}

// RoleRepository defines role and permission persistence operations.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	CreatePermission(ctx context.Context, permission *domain.Permission) error
	GetPermissionByName(ctx context.Context, name string) (*domain.Permission, error)
	GrantPermission(ctx context.Context, roleID, permissionID uuid.UUID) error
}

// UserUseCase handles user-related business logic.
type UserUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	roleRepo        RoleRepository
	passwordService authService.PasswordService
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	roleRepo RoleRepository,
	passwordService authService.PasswordService,
) UseCase {
	return &UserUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		passwordService: passwordService,
	}
}

// passwordRules is the strength policy applied to new passwords.
var passwordRules = []validation.Rule{
	validation.Required.Error("password is required"),
	validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
	appValidation.PasswordStrength{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	},
}

// validateCreateUserInput validates the creation input using jellydator/validation.
func (uc *UserUseCase) validateCreateUserInput(input CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password, passwordRules...),
	)
	return appValidation.WrapValidationError(err)
}

// Create registers a new user, optionally assigning initial roles. Role
// names are validated against the role catalog and the user plus its
// assignments are created in a single transaction.
func (uc *UserUseCase) Create(ctx context.Context, input CreateUserInput) (*domain.UserWithRoles, error) {
	if err := uc.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	digest, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     strings.TrimSpace(input.Name),
		Email:    domain.NormalizeEmail(input.Email),
		Password: digest,
		IsActive: true,
	}

	var created *domain.UserWithRoles
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		// Resolve roles first so an unknown role name fails before any write.
		roles := make([]*domain.Role, 0, len(input.Roles))
		for _, roleName := range input.Roles {
			role, err := uc.roleRepo.GetByName(ctx, domain.NormalizeRoleName(roleName))
			if err != nil {
				return err
			}
			roles = append(roles, role)
		}

		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}

		for _, role := range roles {
			if err := uc.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
				return err
			}
		}

		withRoles, err := uc.userRepo.GetByIDWithRoles(ctx, user.ID)
		if err != nil {
			return err
		}
		created = withRoles
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Get retrieves a user by ID with the resolved role and permission sets.
func (uc *UserUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.UserWithRoles, error) {
	return uc.userRepo.GetByIDWithRoles(ctx, id)
}

// List retrieves users with offset/limit pagination.
func (uc *UserUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, offset, limit)
}

// Update applies the provided fields to an existing user.
func (uc *UserUseCase) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if input.Name != nil {
		err := validation.Validate(*input.Name,
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		)
		if err != nil {
			return appValidation.WrapValidationError(err)
		}
		user.Name = strings.TrimSpace(*input.Name)
	}

	if input.Password != nil {
		if err := validation.Validate(*input.Password, passwordRules...); err != nil {
			return appValidation.WrapValidationError(err)
		}
		digest, err := uc.passwordService.Hash(*input.Password)
		if err != nil {
			return err
		}
		user.Password = digest
	}

	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	return uc.userRepo.Update(ctx, user)
}

// AssignRole grants a role to a user by role name.
func (uc *UserUseCase) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		role, err := uc.roleRepo.GetByName(ctx, domain.NormalizeRoleName(roleName))
		if err != nil {
			return err
		}

		if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
			return err
		}

		return uc.userRepo.AssignRole(ctx, userID, role.ID)
	})
}
