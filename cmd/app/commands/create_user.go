package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	userDomain "github.com/atelierhq/backend/internal/user/domain"
	userUseCase "github.com/atelierhq/backend/internal/user/usecase"
)

// RunCreateUser creates a new user account with the given roles.
// Outputs the created user in either text or JSON format.
//
// Requirements: Database must be migrated and seeded with the role catalog.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	email string,
	password string,
	roles []string,
	format string,
) error {
	logger.Info("creating new user", slog.String("email", email))

	input := userUseCase.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Roles:    roles,
	}

	user, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputUserJSON(user, writer)
	} else {
		outputUserText(user, writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
		slog.Any("roles", user.RoleNames()),
	)

	return nil
}

// outputUserText outputs the user in human-readable text format.
func outputUserText(user *userDomain.UserWithRoles, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", user.Name)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(writer, "Roles: %s\n", strings.Join(user.RoleNames(), ", "))
}

// outputUserJSON outputs the user in JSON format for machine consumption.
func outputUserJSON(user *userDomain.UserWithRoles, writer io.Writer) {
	result := map[string]any{
		"user_id": user.ID.String(),
		"name":    user.Name,
		"email":   user.Email,
		"roles":   user.RoleNames(),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
