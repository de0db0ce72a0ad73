// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	authDomain "github.com/atelierhq/backend/internal/auth/domain"
)

// TokenPairResponse contains the result of a login or refresh.
// SECURITY: tokens are only returned once and must be stored securely by the client.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// MapTokenPairToResponse converts a domain token pair to an API response.
func MapTokenPairToResponse(tokenPair *authDomain.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    tokenPair.ExpiresIn,
	}
}

// IdentityResponse represents the authenticated account in the login response.
type IdentityResponse struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// LoginResponse contains the issued token pair together with the identity
// it was issued for.
type LoginResponse struct {
	TokenPairResponse
	Identity IdentityResponse `json:"identity"`
}

// MapLoginOutputToResponse converts a login result to an API response.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		TokenPairResponse: MapTokenPairToResponse(&output.TokenPair),
		Identity: IdentityResponse{
			ID:    output.Identity.ID.String(),
			Email: output.Identity.Email,
			Name:  output.Identity.Name,
			Roles: output.Identity.Roles,
		},
	}
}

// ProfileResponse represents the authenticated caller in API responses.
type ProfileResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// MapPrincipalToProfileResponse converts an authenticated principal to an API response.
func MapPrincipalToProfileResponse(principal *authDomain.Principal) ProfileResponse {
	return ProfileResponse{
		ID:          principal.ID.String(),
		Email:       principal.Email,
		Name:        principal.Name,
		Roles:       principal.Roles,
		Permissions: principal.Permissions,
	}
}
