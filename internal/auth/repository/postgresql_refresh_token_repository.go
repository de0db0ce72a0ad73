// Package repository implements refresh token persistence for PostgreSQL
// and MySQL databases.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/atelierhq/backend/internal/auth/domain"
	"github.com/atelierhq/backend/internal/database"
	apperrors "github.com/atelierhq/backend/internal/errors"
)

// PostgreSQLRefreshTokenRepository implements RefreshToken persistence for
// PostgreSQL. Uses native UUID types with transaction support via
// database.GetTx().
type PostgreSQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new RefreshToken into the PostgreSQL database. Uses
// transaction support via database.GetTx(). Returns an error if database
// insertion fails.
func (p *PostgreSQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
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
// Returns the number of rows updated so callers can distinguish a winning
// revocation from an already-revoked or unknown token.
func (p *PostgreSQLRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens SET revoked_at = NOW()
			  WHERE token_hash = $1 AND revoked_at IS NULL`

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
// revoked. The operation is idempotent: revoking a user with no active
// tokens is not an error.
func (p *PostgreSQLRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens SET revoked_at = NOW()
			  WHERE user_id = $1 AND revoked_at IS NULL`

	_, err := querier.ExecContext(ctx, query, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke user refresh tokens")
	}

	return nil
}

// NewPostgreSQLRefreshTokenRepository creates a new PostgreSQL RefreshToken repository.
func NewPostgreSQLRefreshTokenRepository(db *sql.DB) *PostgreSQLRefreshTokenRepository {
	return &PostgreSQLRefreshTokenRepository{db: db}
}
