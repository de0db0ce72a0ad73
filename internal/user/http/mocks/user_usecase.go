// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/atelierhq/backend/internal/user/domain"
	"github.com/atelierhq/backend/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of the user UseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

// Create mocks the Create method of UseCase.
func (m *MockUserUseCase) Create(ctx context.Context, input usecase.CreateUserInput) (*domain.UserWithRoles, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWithRoles), args.Error(1)
}

// Get mocks the Get method of UseCase.
func (m *MockUserUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.UserWithRoles, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWithRoles), args.Error(1)
}

// List mocks the List method of UseCase.
func (m *MockUserUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// Update mocks the Update method of UseCase.
func (m *MockUserUseCase) Update(ctx context.Context, id uuid.UUID, input usecase.UpdateUserInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

// AssignRole mocks the AssignRole method of UseCase.
func (m *MockUserUseCase) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	args := m.Called(ctx, userID, roleName)
	return args.Error(0)
}

// Seed mocks the Seed method of UseCase.
func (m *MockUserUseCase) Seed(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
