package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	userMocks "github.com/atelierhq/backend/internal/user/http/mocks"
)

func TestRunSeed(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Seed", ctx).Return(nil)

		var out bytes.Buffer
		err := RunSeed(ctx, mockUseCase, logger, &out)

		require.NoError(t, err)
		require.Contains(t, out.String(), "seeded successfully")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("usecase-error", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Seed", ctx).Return(errors.New("database unavailable"))

		var out bytes.Buffer
		err := RunSeed(ctx, mockUseCase, logger, &out)

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to seed catalog")
		mockUseCase.AssertExpectations(t)
	})
}
