package service

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() TokenService {
	return NewTokenService(
		"atelier-test",
		"access-secret-for-tests",
		15*time.Minute,
		"refresh-secret-for-tests",
		7*24*time.Hour,
	)
}

func TestNewTokenService(t *testing.T) {
	service := newTestTokenService()
	assert.NotNil(t, service)
	assert.IsType(t, &jwtTokenService{}, service)
	assert.Equal(t, 15*time.Minute, service.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, service.RefreshTokenTTL())
}

func TestTokenService_IssueAccessToken(t *testing.T) {
	service := newTestTokenService()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_IssuesVerifiableToken", func(t *testing.T) {
		tokenString, err := service.IssueAccessToken(userID, "user@example.com", []string{"admin", "user"})
		require.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		claims, err := service.VerifyAccessToken(tokenString)
		require.NoError(t, err)

		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, []string{"admin", "user"}, claims.Roles)
		assert.Equal(t, "atelier-test", claims.Issuer)
		assert.Equal(t, userID.String(), claims.Subject)
		assert.NotEmpty(t, claims.ID)

		parsedID, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsedID)
	})

	t.Run("Success_ExpirySetByAccessTTL", func(t *testing.T) {
		tokenString, err := service.IssueAccessToken(userID, "user@example.com", nil)
		require.NoError(t, err)

		claims, err := service.VerifyAccessToken(tokenString)
		require.NoError(t, err)

		lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
		assert.Equal(t, 15*time.Minute, lifetime)
	})

	t.Run("Success_UniqueTokenIDs", func(t *testing.T) {
		token1, err := service.IssueAccessToken(userID, "user@example.com", nil)
		require.NoError(t, err)
		token2, err := service.IssueAccessToken(userID, "user@example.com", nil)
		require.NoError(t, err)

		claims1, err := service.VerifyAccessToken(token1)
		require.NoError(t, err)
		claims2, err := service.VerifyAccessToken(token2)
		require.NoError(t, err)

		assert.NotEqual(t, claims1.ID, claims2.ID)
	})
}

func TestTokenService_IssueRefreshToken(t *testing.T) {
	service := newTestTokenService()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_IssuesVerifiableToken", func(t *testing.T) {
		tokenString, err := service.IssueRefreshToken(userID, "user@example.com")
		require.NoError(t, err)

		claims, err := service.VerifyRefreshToken(tokenString)
		require.NoError(t, err)

		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, userID.String(), claims.Subject)

		// Refresh tokens never carry role claims
		assert.Empty(t, claims.Roles)
	})

	t.Run("Success_ExpirySetByRefreshTTL", func(t *testing.T) {
		tokenString, err := service.IssueRefreshToken(userID, "user@example.com")
		require.NoError(t, err)

		claims, err := service.VerifyRefreshToken(tokenString)
		require.NoError(t, err)

		lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
		assert.Equal(t, 7*24*time.Hour, lifetime)
	})
}

func TestTokenService_Verify(t *testing.T) {
	service := newTestTokenService()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Error_AccessTokenRejectedByRefreshVerifier", func(t *testing.T) {
		tokenString, err := service.IssueAccessToken(userID, "user@example.com", []string{"user"})
		require.NoError(t, err)

		claims, err := service.VerifyRefreshToken(tokenString)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Error_RefreshTokenRejectedByAccessVerifier", func(t *testing.T) {
		tokenString, err := service.IssueRefreshToken(userID, "user@example.com")
		require.NoError(t, err)

		claims, err := service.VerifyAccessToken(tokenString)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		other := NewTokenService("atelier-test", "completely-different-secret", 15*time.Minute, "another-secret", time.Hour)
		tokenString, err := other.IssueAccessToken(userID, "user@example.com", nil)
		require.NoError(t, err)

		claims, err := service.VerifyAccessToken(tokenString)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Error_WrongIssuer", func(t *testing.T) {
		other := NewTokenService("someone-else", "access-secret-for-tests", 15*time.Minute, "refresh-secret-for-tests", time.Hour)
		tokenString, err := other.IssueAccessToken(userID, "user@example.com", nil)
		require.NoError(t, err)

		claims, err := service.VerifyAccessToken(tokenString)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		expired := NewTokenService("atelier-test", "access-secret-for-tests", -time.Minute, "refresh-secret-for-tests", -time.Minute)
		tokenString, err := expired.IssueAccessToken(userID, "user@example.com", nil)
		require.NoError(t, err)

		claims, err := service.VerifyAccessToken(tokenString)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		claims, err := service.VerifyAccessToken("not.a.token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestTokenService_HashToken(t *testing.T) {
	service := newTestTokenService()

	t.Run("Success_ProducesSHA256Hex", func(t *testing.T) {
		tokenHash := service.HashToken("some-token-value")

		expected := sha256.Sum256([]byte("some-token-value"))
		assert.Equal(t, hex.EncodeToString(expected[:]), tokenHash)
		assert.Len(t, tokenHash, 64)
	})

	t.Run("Success_Deterministic", func(t *testing.T) {
		assert.Equal(t, service.HashToken("abc"), service.HashToken("abc"))
		assert.NotEqual(t, service.HashToken("abc"), service.HashToken("abd"))
	})
}
