package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/atelierhq/backend/internal/auth/domain"
	"github.com/atelierhq/backend/internal/auth/http/mocks"
	"github.com/atelierhq/backend/internal/auth/usecase"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics to avoid dependency issues.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestAuthUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Login success", func(t *testing.T) {
		mockNext := &mocks.MockAuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		output := &authDomain.LoginOutput{
			TokenPair: authDomain.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			Identity:  authDomain.Identity{Email: "user@example.com"},
		}

		mockNext.On("Login", ctx, "user@example.com", "password").Return(output, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "login", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "login", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Login(ctx, "user@example.com", "password")
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Login error", func(t *testing.T) {
		mockNext := &mocks.MockAuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		expectedErr := errors.New("error")

		mockNext.On("Login", ctx, "user@example.com", "password").Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "login", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "login", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Login(ctx, "user@example.com", "password")
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Refresh success", func(t *testing.T) {
		mockNext := &mocks.MockAuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		pair := &authDomain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

		mockNext.On("Refresh", ctx, "old-refresh").Return(pair, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "refresh", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "refresh", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Refresh(ctx, "old-refresh")
		assert.NoError(t, err)
		assert.Equal(t, pair, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Logout success", func(t *testing.T) {
		mockNext := &mocks.MockAuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Logout", ctx, "refresh").Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "logout", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "logout", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := uc.Logout(ctx, "refresh")
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("LogoutAll success", func(t *testing.T) {
		mockNext := &mocks.MockAuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		userID := uuid.Must(uuid.NewV7())

		mockNext.On("LogoutAll", ctx, userID).Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "logout_all", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "logout_all", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := uc.LogoutAll(ctx, userID)
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Authenticate success", func(t *testing.T) {
		mockNext := &mocks.MockAuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		principal := &authDomain.Principal{ID: uuid.Must(uuid.NewV7()), IsActive: true}

		mockNext.On("Authenticate", ctx, "access").Return(principal, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "authenticate", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "authenticate", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Authenticate(ctx, "access")
		assert.NoError(t, err)
		assert.Equal(t, principal, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Authenticate error", func(t *testing.T) {
		mockNext := &mocks.MockAuthUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuthUseCaseWithMetrics(mockNext, mockMetrics)

		expectedErr := errors.New("error")

		mockNext.On("Authenticate", ctx, "access").Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "authenticate", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "authenticate", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Authenticate(ctx, "access")
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
