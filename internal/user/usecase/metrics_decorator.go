package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/backend/internal/metrics"
	"github.com/atelierhq/backend/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}

// Create records metrics for user creation operations.
func (u *userUseCaseWithMetrics) Create(ctx context.Context, input CreateUserInput) (*domain.UserWithRoles, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, input)
	u.record(ctx, "create", start, err)
	return user, err
}

// Get records metrics for user retrieval operations.
func (u *userUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.UserWithRoles, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, id)
	u.record(ctx, "get", start, err)
	return user, err
}

// List records metrics for user listing operations.
func (u *userUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, offset, limit)
	u.record(ctx, "list", start, err)
	return users, err
}

// Update records metrics for user update operations.
func (u *userUseCaseWithMetrics) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) error {
	start := time.Now()
	err := u.next.Update(ctx, id, input)
	u.record(ctx, "update", start, err)
	return err
}

// AssignRole records metrics for role assignment operations.
func (u *userUseCaseWithMetrics) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	start := time.Now()
	err := u.next.AssignRole(ctx, userID, roleName)
	u.record(ctx, "assign_role", start, err)
	return err
}

// Seed records metrics for catalog seeding operations.
func (u *userUseCaseWithMetrics) Seed(ctx context.Context) error {
	start := time.Now()
	err := u.next.Seed(ctx)
	u.record(ctx, "seed", start, err)
	return err
}
