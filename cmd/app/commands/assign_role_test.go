package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	userDomain "github.com/atelierhq/backend/internal/user/domain"
	userMocks "github.com/atelierhq/backend/internal/user/http/mocks"
)

func TestRunAssignRole(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("AssignRole", ctx, userID, "moderator").Return(nil)

		var out bytes.Buffer
		err := RunAssignRole(ctx, mockUseCase, logger, &out, userID.String(), "moderator")

		require.NoError(t, err)
		require.Contains(t, out.String(), userID.String())
		require.Contains(t, out.String(), "moderator")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-user-id", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}

		var out bytes.Buffer
		err := RunAssignRole(ctx, mockUseCase, logger, &out, "not-a-uuid", "moderator")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid user ID")
		mockUseCase.AssertNotCalled(t, "AssignRole")
	})

	t.Run("usecase-error", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("AssignRole", ctx, userID, "ghost").Return(userDomain.ErrRoleNotFound)

		var out bytes.Buffer
		err := RunAssignRole(ctx, mockUseCase, logger, &out, userID.String(), "ghost")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to assign role")
		mockUseCase.AssertExpectations(t)
	})
}
