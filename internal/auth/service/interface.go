// Package service provides technical services for authentication operations.
//
// This package implements password hashing and signed token issuance and
// verification using industry-standard cryptographic practices.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the payload carried by signed access and refresh tokens.
// Roles is populated on access tokens only and is a display hint, never an
// authorization source: the current role set is always re-resolved from
// storage when a token is verified.
type TokenClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim parsed as a UUID.
func (c *TokenClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// PasswordService defines operations for password hashing and verification.
// Implementations must use a slow adaptive hash (e.g., argon2id, bcrypt).
type PasswordService interface {
	// Hash hashes a plain text password for storage.
	Hash(plainPassword string) (digest string, error error)

	// Compare compares a plain text password against a stored digest.
	// Returns true on match, false otherwise. The comparison is constant
	// time and the plaintext is never logged or returned.
	Compare(plainPassword string, digest string) bool
}

// TokenService defines signed token issuance and verification.
//
// Access and refresh tokens share one wire format and one signer; they
// differ only in the named secret, lifetime, and whether role claims are
// embedded. Compromise of one secret must not compromise the other.
type TokenService interface {
	// IssueAccessToken mints a short-lived access token carrying identity
	// and role claims. Issuance has no side effects.
	IssueAccessToken(userID uuid.UUID, email string, roles []string) (string, error)

	// IssueRefreshToken mints a long-lived refresh token carrying identity
	// claims only. Persistence of the token record is the caller's step so
	// issuance and persistence can be tested independently.
	IssueRefreshToken(userID uuid.UUID, email string) (string, error)

	// VerifyAccessToken checks signature and expiry against the access
	// secret and returns the claims.
	VerifyAccessToken(tokenString string) (*TokenClaims, error)

	// VerifyRefreshToken checks signature and expiry against the refresh
	// secret and returns the claims.
	VerifyRefreshToken(tokenString string) (*TokenClaims, error)

	// HashToken hashes a token string using SHA-256 for storage lookups,
	// so the database never holds a usable token value.
	HashToken(plainToken string) string

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}
