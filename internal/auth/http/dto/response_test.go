package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/atelierhq/backend/internal/auth/domain"
)

func TestMapTokenPairToResponse(t *testing.T) {
	tokenPair := &authDomain.TokenPair{
		AccessToken:  "access-token-value",
		RefreshToken: "refresh-token-value",
		ExpiresIn:    900,
	}

	response := MapTokenPairToResponse(tokenPair)

	assert.Equal(t, "access-token-value", response.AccessToken)
	assert.Equal(t, "refresh-token-value", response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestMapLoginOutputToResponse(t *testing.T) {
	output := &authDomain.LoginOutput{
		TokenPair: authDomain.TokenPair{
			AccessToken:  "access-token-value",
			RefreshToken: "refresh-token-value",
			ExpiresIn:    900,
		},
		Identity: authDomain.Identity{
			ID:    uuid.Must(uuid.NewV7()),
			Email: "user@example.com",
			Name:  "Test User",
			Roles: []string{"admin", "user"},
		},
	}

	response := MapLoginOutputToResponse(output)

	assert.Equal(t, "access-token-value", response.AccessToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
	assert.Equal(t, output.Identity.ID.String(), response.Identity.ID)
	assert.Equal(t, "user@example.com", response.Identity.Email)
	assert.Equal(t, "Test User", response.Identity.Name)
	assert.Equal(t, []string{"admin", "user"}, response.Identity.Roles)
}

func TestMapPrincipalToProfileResponse(t *testing.T) {
	principal := &authDomain.Principal{
		ID:          uuid.Must(uuid.NewV7()),
		Email:       "user@example.com",
		Name:        "Test User",
		IsActive:    true,
		Roles:       []string{"moderator"},
		Permissions: []string{"users:read"},
	}

	response := MapPrincipalToProfileResponse(principal)

	assert.Equal(t, principal.ID.String(), response.ID)
	assert.Equal(t, "user@example.com", response.Email)
	assert.Equal(t, "Test User", response.Name)
	assert.Equal(t, []string{"moderator"}, response.Roles)
	assert.Equal(t, []string{"users:read"}, response.Permissions)
}
