package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	userUseCase "github.com/atelierhq/backend/internal/user/usecase"
)

// RunSeed creates the default role and permission catalog.
// Safe to re-run: existing roles and permissions are left untouched.
//
// Requirements: Database must be migrated and accessible.
func RunSeed(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
) error {
	logger.Info("seeding role and permission catalog")

	if err := useCase.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "Role and permission catalog seeded successfully")

	logger.Info("seed completed successfully")
	return nil
}
