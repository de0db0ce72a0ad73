// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/backend/internal/user/domain"
)

// UserResponse represents the API response for a user.
// It excludes sensitive information like passwords and provides
// a clean external representation of the user domain model.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserWithRolesResponse represents a user with its resolved role and
// permission sets.
type UserWithRolesResponse struct {
	UserResponse
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// ListUsersResponse represents a paginated list of users.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}

// ToUserResponse converts a domain User model to a UserResponse DTO.
// This enforces the boundary between internal domain models and external API contracts.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserWithRolesResponse converts a domain UserWithRoles to its API response.
func ToUserWithRolesResponse(user *domain.UserWithRoles) UserWithRolesResponse {
	permissions := make([]string, 0, len(user.Permissions))
	for _, permission := range user.Permissions {
		permissions = append(permissions, permission.Name)
	}

	return UserWithRolesResponse{
		UserResponse: ToUserResponse(&user.User),
		Roles:        user.RoleNames(),
		Permissions:  permissions,
	}
}

// ToListUsersResponse converts a slice of domain users to a list API response.
func ToListUsersResponse(users []*domain.User) ListUsersResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, ToUserResponse(user))
	}
	return ListUsersResponse{Data: data}
}
