// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/atelierhq/backend/internal/auth/domain"
	authUseCase "github.com/atelierhq/backend/internal/auth/usecase"
	apperrors "github.com/atelierhq/backend/internal/errors"
	"github.com/atelierhq/backend/internal/httputil"
)

// AuthenticationMiddleware provides authentication via Bearer token in the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Verifies the token and re-resolves roles using authUseCase.Authenticate()
// 3. Stores the resulting principal in the request context
// 4. Allows downstream handlers to access the principal via GetPrincipal()
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer")
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Invalid/expired token or unknown/deactivated user → 401 Unauthorized
func AuthenticationMiddleware(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		accessToken := authHeader[len(bearerPrefix):]
		if accessToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		principal, err := authUseCase.Authenticate(c.Request.Context(), accessToken)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", principal.ID.String()),
			slog.String("email", principal.Email))

		c.Next()
	}
}

// RequireRoles provides role-based authorization for authenticated principals.
//
// This middleware MUST be used after AuthenticationMiddleware, as it requires
// a principal to be present in the request context. The check passes when the
// required set is empty or when the principal holds at least one of the
// required roles.
//
// Error handling:
//   - No principal in context → 401 Unauthorized (AuthenticationMiddleware not run)
//   - Principal lacks every required role → 403 Forbidden
func RequireRoles(logger *slog.Logger, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("authorization failed: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if err := authDomain.Authorize(principal, requiredRoles); err != nil {
			logger.Debug("authorization failed: insufficient roles",
				slog.String("user_id", principal.ID.String()),
				slog.Any("roles", principal.Roles),
				slog.Any("required_roles", requiredRoles))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		logger.Debug("authorization successful",
			slog.String("user_id", principal.ID.String()),
			slog.Any("required_roles", requiredRoles))

		c.Next()
	}
}
