// Package usecase defines business logic interfaces for authentication and authorization operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/atelierhq/backend/internal/auth/domain"
	userDomain "github.com/atelierhq/backend/internal/user/domain"
)

// UserRepository defines the user lookups authentication depends on. Roles
// and permissions are always resolved live from storage so revoked or newly
// granted roles take effect on the next authenticated request.
type UserRepository interface {
	// GetByEmailWithRoles retrieves a user with roles and permissions by email.
	// Returns ErrUserNotFound if not found.
	GetByEmailWithRoles(ctx context.Context, email string) (*userDomain.UserWithRoles, error)

	// GetByIDWithRoles retrieves a user with roles and permissions by ID.
	// Returns ErrUserNotFound if not found.
	GetByIDWithRoles(ctx context.Context, id uuid.UUID) (*userDomain.UserWithRoles, error)
}

// RefreshTokenRepository defines persistence operations for refresh tokens.
// Implementations must support transaction-aware operations via context propagation.
type RefreshTokenRepository interface {
	// Create stores a new refresh token record.
	Create(ctx context.Context, token *authDomain.RefreshToken) error

	// Revoke marks the token with the given hash as revoked if it is still
	// active, returning the number of affected rows. A zero count means the
	// token was unknown or already revoked.
	Revoke(ctx context.Context, tokenHash string) (int64, error)

	// RevokeAllForUser revokes every active token of the given user.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

// AuthUseCase defines the authentication and authorization operations.
type AuthUseCase interface {
	// Login verifies an email and password pair and issues a token pair on
	// success, returned together with the authenticated identity. Unknown
	// emails, wrong passwords and deactivated accounts all collapse into
	// ErrInvalidCredentials.
	Login(ctx context.Context, email string, password string) (*authDomain.LoginOutput, error)

	// Refresh exchanges a valid refresh token for a fresh token pair, revoking
	// the presented token. A given refresh token can be exchanged exactly once:
	// concurrent exchanges of the same token yield one winner and
	// ErrInvalidRefreshToken for the rest.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)

	// Logout revokes the given refresh token. Idempotent: revoking an unknown
	// or already-revoked token succeeds silently.
	Logout(ctx context.Context, refreshToken string) error

	// LogoutAll revokes every active refresh token of the given user.
	LogoutAll(ctx context.Context, userID uuid.UUID) error

	// Authenticate verifies an access token and returns the principal with
	// roles and permissions re-resolved from storage. Any verification or
	// lookup failure collapses into ErrUnauthorized.
	Authenticate(ctx context.Context, accessToken string) (*authDomain.Principal, error)
}
