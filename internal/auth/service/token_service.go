package service

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/atelierhq/backend/internal/errors"
)

// signingKey pairs a named HMAC secret with the lifetime of tokens it signs.
type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// jwtTokenService implements TokenService using HS256 signed JWTs with
// separate secrets for access and refresh tokens.
type jwtTokenService struct {
	issuer  string
	access  signingKey
	refresh signingKey
}

func (t *jwtTokenService) IssueAccessToken(userID uuid.UUID, email string, roles []string) (string, error) {
	return t.sign(t.access, userID, email, roles)
}

func (t *jwtTokenService) IssueRefreshToken(userID uuid.UUID, email string) (string, error) {
	return t.sign(t.refresh, userID, email, nil)
}

func (t *jwtTokenService) VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	return t.verify(t.access, tokenString)
}

func (t *jwtTokenService) VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return t.verify(t.refresh, tokenString)
}

// HashToken hashes a plain text token using SHA-256.
// Returns the hash as a hexadecimal string.
func (t *jwtTokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

func (t *jwtTokenService) AccessTokenTTL() time.Duration {
	return t.access.ttl
}

func (t *jwtTokenService) RefreshTokenTTL() time.Duration {
	return t.refresh.ttl
}

func (t *jwtTokenService) sign(key signingKey, userID uuid.UUID, email string, roles []string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(key.ttl)),
			ID:        uuid.Must(uuid.NewV7()).String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

func (t *jwtTokenService) verify(key signingKey, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return key.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to verify token")
	}

	return claims, nil
}

// NewTokenService creates a new TokenService that signs HS256 JWTs with the
// given issuer and per-purpose secret and lifetime pairs.
func NewTokenService(issuer string, accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) TokenService {
	return &jwtTokenService{
		issuer:  issuer,
		access:  signingKey{secret: []byte(accessSecret), ttl: accessTTL},
		refresh: signingKey{secret: []byte(refreshSecret), ttl: refreshTTL},
	}
}
