// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/atelierhq/backend/internal/validation"
	"github.com/atelierhq/backend/internal/user/usecase"
)

// CreateUserRequest represents the API request for user creation.
type CreateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Validate validates the CreateUserRequest using the jellydator/validation library.
// This provides comprehensive validation including:
// - Required field checks
// - Email format validation
// - Password strength requirements (min 8 chars, uppercase, lowercase, number, special char)
func (r *CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
		validation.Field(&r.Roles,
			validation.Each(appValidation.NotBlank),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ToCreateUserInput converts the request into the use case input.
func ToCreateUserInput(r CreateUserRequest) usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Roles:    r.Roles,
	}
}

// UpdateUserRequest represents the API request for a partial user update.
// Omitted fields are left unchanged; field-level validation happens in the
// use case since every field is optional here.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// ToUpdateUserInput converts the request into the use case input.
func ToUpdateUserInput(r UpdateUserRequest) usecase.UpdateUserInput {
	return usecase.UpdateUserInput{
		Name:     r.Name,
		Password: r.Password,
		IsActive: r.IsActive,
	}
}

// AssignRoleRequest represents the API request for granting a role to a user.
type AssignRoleRequest struct {
	Role string `json:"role"`
}

// Validate validates the AssignRoleRequest.
func (r *AssignRoleRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("role must be between 1 and 100 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}
