// Package domain contains the core entities and rules for authentication
// and authorization.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the stored record of an issued refresh token. Only the
// SHA-256 hash of the token is kept; the signed token value never touches
// the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsRevoked reports whether the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the token expired before the given moment.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// TokenPair is the result of a successful login or refresh: a short-lived
// access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Identity is the authenticated account summary returned alongside the
// token pair on login.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
	Roles []string
}

// LoginOutput is the result of a successful login: the issued token pair
// plus the identity it was issued for.
type LoginOutput struct {
	TokenPair TokenPair
	Identity  Identity
}
