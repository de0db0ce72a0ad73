package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/atelierhq/backend/internal/auth/domain"
	"github.com/atelierhq/backend/internal/database"
	apperrors "github.com/atelierhq/backend/internal/errors"
)

// MySQLRefreshTokenRepository implements RefreshToken persistence for MySQL.
// UUIDs are stored as BINARY(16) columns.
type MySQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new RefreshToken into the MySQL database.
func (m *MySQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	idBytes, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	userIDBytes, err := token.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		userIDBytes,
		token.TokenHash,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// Revoke marks the refresh token with the given hash as revoked. The
// revoked_at IS NULL guard makes the update a compare-and-set: when two
// callers race on the same token, exactly one observes an affected row.
func (m *MySQLRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens SET revoked_at = NOW()
			  WHERE token_hash = ? AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to revoke refresh token")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}

	return rows, nil
}

// RevokeAllForUser marks every active refresh token of the given user as
// revoked. Idempotent when the user has no active tokens.
func (m *MySQLRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens SET revoked_at = NOW()
			  WHERE user_id = ? AND revoked_at IS NULL`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, userIDBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke user refresh tokens")
	}

	return nil
}

// NewMySQLRefreshTokenRepository creates a new MySQL RefreshToken repository.
func NewMySQLRefreshTokenRepository(db *sql.DB) *MySQLRefreshTokenRepository {
	return &MySQLRefreshTokenRepository{db: db}
}
