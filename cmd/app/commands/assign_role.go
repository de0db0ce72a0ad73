package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	userUseCase "github.com/atelierhq/backend/internal/user/usecase"
)

// RunAssignRole grants a role to an existing user by role name.
//
// Requirements: Database must be migrated and seeded with the role catalog.
func RunAssignRole(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	userIDInput string,
	role string,
) error {
	userID, err := uuid.Parse(userIDInput)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	logger.Info("assigning role",
		slog.String("user_id", userID.String()),
		slog.String("role", role),
	)

	if err := useCase.AssignRole(ctx, userID, role); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Role %q assigned to user %s\n", role, userID.String())

	logger.Info("role assigned successfully",
		slog.String("user_id", userID.String()),
		slog.String("role", role),
	)

	return nil
}
