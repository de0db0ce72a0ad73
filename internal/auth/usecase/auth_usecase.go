// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/atelierhq/backend/internal/auth/domain"
	authService "github.com/atelierhq/backend/internal/auth/service"
	"github.com/atelierhq/backend/internal/database"
	apperrors "github.com/atelierhq/backend/internal/errors"
	userDomain "github.com/atelierhq/backend/internal/user/domain"
)

// authUseCase implements AuthUseCase for credential verification, token
// issuance and rotation, revocation and request authentication.
type authUseCase struct {
	txManager        database.TxManager
	userRepo         UserRepository
	refreshTokenRepo RefreshTokenRepository
	passwordService  authService.PasswordService
	tokenService     authService.TokenService
}

// Login verifies an email and password pair and issues a new token pair.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for unknown emails, wrong passwords and
//     deactivated accounts alike to prevent account enumeration
//   - The password comparison runs even though it is slow; the cost is the
//     point of an adaptive hash
//   - The refresh token is stored hashed, never in plain form
func (a *authUseCase) Login(ctx context.Context, email string, password string) (*authDomain.LoginOutput, error) {
	user, err := a.userRepo.GetByEmailWithRoles(ctx, userDomain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, persistenceError(err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !a.passwordService.Compare(password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	tokenPair, record, err := a.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := a.refreshTokenRepo.Create(ctx, record); err != nil {
		return nil, persistenceError(err)
	}

	return &authDomain.LoginOutput{
		TokenPair: *tokenPair,
		Identity: authDomain.Identity{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Roles: user.RoleNames(),
		},
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair, revoking the
// presented token in the same transaction that persists its replacement.
//
// The revocation is a compare-and-set on the stored token record: when two
// requests race on the same refresh token, the database lets exactly one of
// them flip revoked_at and the other observes zero affected rows. The loser
// gets ErrInvalidRefreshToken and no tokens.
func (a *authUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	claims, err := a.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	tokenHash := a.tokenService.HashToken(refreshToken)

	var tokenPair *authDomain.TokenPair
	err = a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		rows, err := a.refreshTokenRepo.Revoke(txCtx, tokenHash)
		if err != nil {
			return persistenceError(err)
		}
		if rows == 0 {
			// Unknown, already rotated or revoked token
			return apperrors.ErrInvalidRefreshToken
		}

		user, err := a.userRepo.GetByIDWithRoles(txCtx, userID)
		if err != nil {
			if errors.Is(err, userDomain.ErrUserNotFound) {
				return apperrors.ErrInvalidRefreshToken
			}
			return persistenceError(err)
		}

		if !user.IsActive {
			return apperrors.ErrInvalidRefreshToken
		}

		pair, record, err := a.issueTokenPair(user)
		if err != nil {
			return err
		}

		if err := a.refreshTokenRepo.Create(txCtx, record); err != nil {
			return persistenceError(err)
		}

		tokenPair = pair
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// Logout revokes the presented refresh token. Revoking an unknown or
// already-revoked token is not an error, so retried logouts stay safe.
func (a *authUseCase) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := a.tokenService.HashToken(refreshToken)

	if _, err := a.refreshTokenRepo.Revoke(ctx, tokenHash); err != nil {
		return persistenceError(err)
	}

	return nil
}

// LogoutAll revokes every active refresh token of the given user. Active
// access tokens keep working until they expire; their short lifetime bounds
// the exposure.
func (a *authUseCase) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := a.refreshTokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return persistenceError(err)
	}

	return nil
}

// Authenticate verifies an access token and resolves the caller's current
// roles and permissions from storage.
//
// Security Notes:
//   - Role claims embedded in the token are ignored; the live role set
//     decides authorization so revoked roles take effect immediately
//   - A deactivated account fails authentication even with a valid token
//   - All failure modes collapse into ErrUnauthorized so responses do not
//     reveal whether a token was malformed, expired or orphaned
func (a *authUseCase) Authenticate(ctx context.Context, accessToken string) (*authDomain.Principal, error) {
	claims, err := a.tokenService.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := a.userRepo.GetByIDWithRoles(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}

	permissions := make([]string, 0, len(user.Permissions))
	for _, permission := range user.Permissions {
		permissions = append(permissions, permission.Name)
	}

	return &authDomain.Principal{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		IsActive:    user.IsActive,
		Roles:       user.RoleNames(),
		Permissions: permissions,
	}, nil
}

// issueTokenPair mints an access and refresh token for the user and builds
// the storage record for the refresh token hash.
func (a *authUseCase) issueTokenPair(user *userDomain.UserWithRoles) (*authDomain.TokenPair, *authDomain.RefreshToken, error) {
	accessToken, err := a.tokenService.IssueAccessToken(user.ID, user.Email, user.RoleNames())
	if err != nil {
		return nil, nil, err
	}

	refreshToken, err := a.tokenService.IssueRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	record := &authDomain.RefreshToken{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    user.ID,
		TokenHash: a.tokenService.HashToken(refreshToken),
		ExpiresAt: now.Add(a.tokenService.RefreshTokenTTL()),
		RevokedAt: nil,
		CreatedAt: now,
	}

	tokenPair := &authDomain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(a.tokenService.AccessTokenTTL().Seconds()),
	}

	return tokenPair, record, nil
}

// persistenceError keeps the closed error taxonomy: storage failures surface
// as ErrPersistence while the original cause stays in the chain for logs.
func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	refreshTokenRepo RefreshTokenRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) AuthUseCase {
	return &authUseCase{
		txManager:        txManager,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		passwordService:  passwordService,
		tokenService:     tokenService,
	}
}
