package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/atelierhq/backend/internal/user/domain"
	"github.com/atelierhq/backend/internal/user/http/mocks"
	"github.com/atelierhq/backend/internal/user/usecase"
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

func TestUserUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Create success", func(t *testing.T) {
		mockNext := &mocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		input := usecase.CreateUserInput{Name: "Jane Doe", Email: "jane@example.com", Password: "Str0ng!Passw0rd"}
		user := &domain.UserWithRoles{User: domain.User{ID: uuid.Must(uuid.NewV7())}}

		mockNext.On("Create", ctx, input).Return(user, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "create", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "create", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Create(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Create error", func(t *testing.T) {
		mockNext := &mocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		input := usecase.CreateUserInput{Email: "jane@example.com"}
		expectedErr := errors.New("error")

		mockNext.On("Create", ctx, input).Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "create", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "create", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Create(ctx, input)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Get success", func(t *testing.T) {
		mockNext := &mocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		userID := uuid.Must(uuid.NewV7())
		user := &domain.UserWithRoles{User: domain.User{ID: userID}}

		mockNext.On("Get", ctx, userID).Return(user, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "get", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "get", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Get(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("List success", func(t *testing.T) {
		mockNext := &mocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		users := []*domain.User{{ID: uuid.Must(uuid.NewV7())}}

		mockNext.On("List", ctx, 0, 50).Return(users, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "list", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "list", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.List(ctx, 0, 50)
		assert.NoError(t, err)
		assert.Equal(t, users, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Update success", func(t *testing.T) {
		mockNext := &mocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		userID := uuid.Must(uuid.NewV7())
		name := "New Name"
		input := usecase.UpdateUserInput{Name: &name}

		mockNext.On("Update", ctx, userID, input).Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "update", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "update", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := uc.Update(ctx, userID, input)
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("AssignRole success", func(t *testing.T) {
		mockNext := &mocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		userID := uuid.Must(uuid.NewV7())

		mockNext.On("AssignRole", ctx, userID, "moderator").Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "assign_role", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "assign_role", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		err := uc.AssignRole(ctx, userID, "moderator")
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Seed error", func(t *testing.T) {
		mockNext := &mocks.MockUserUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

		expectedErr := errors.New("error")

		mockNext.On("Seed", ctx).Return(expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "user", "seed", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "user", "seed", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		err := uc.Seed(ctx)
		assert.Error(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
