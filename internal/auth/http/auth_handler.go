// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierhq/backend/internal/auth/http/dto"
	authUseCase "github.com/atelierhq/backend/internal/auth/usecase"
	apperrors "github.com/atelierhq/backend/internal/errors"
	"github.com/atelierhq/backend/internal/httputil"
	customValidation "github.com/atelierhq/backend/internal/validation"
)

// AuthHandler handles HTTP requests for authentication operations.
// It coordinates credential verification and token lifecycle with the AuthUseCase.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new authentication handler with required dependencies.
func NewAuthHandler(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler verifies credentials and issues a token pair.
// POST /v1/auth/login - No authentication required (this is the authentication endpoint).
// Returns 200 OK with access and refresh tokens plus the account identity.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLoginOutputToResponse(output))
}

// RefreshHandler exchanges a refresh token for a fresh token pair.
// POST /v1/auth/refresh - No authentication required; the refresh token is the credential.
// Returns 200 OK with the new pair. The presented token is revoked and cannot
// be exchanged again.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	tokenPair, err := h.authUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenPairToResponse(tokenPair))
}

// LogoutHandler revokes the presented refresh token.
// POST /v1/auth/logout - Requires authentication.
// Returns 204 No Content. Revoking an already-revoked token is not an error.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	var req dto.LogoutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// LogoutAllHandler revokes every active refresh token of the caller.
// POST /v1/auth/logout-all - Requires authentication.
// Returns 204 No Content.
func (h *AuthHandler) LogoutAllHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.authUseCase.LogoutAll(c.Request.Context(), principal.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ProfileHandler returns the authenticated caller with its current roles
// and permissions.
// GET /v1/auth/profile - Requires authentication.
func (h *AuthHandler) ProfileHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalToProfileResponse(principal))
}
