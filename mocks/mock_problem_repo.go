package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"probimport/internal/domain"
)

// MockProblemRepo is a mock implementation of port.ProblemRepository.
type MockProblemRepo struct {
	mock.Mock
}

func (m *MockProblemRepo) Create(ctx context.Context, problem *domain.Problem) error {
	args := m.Called(ctx, problem)
	return args.Error(0)
}

func (m *MockProblemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}

func (m *MockProblemRepo) List(ctx context.Context, offset, limit int) ([]domain.Problem, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Problem), args.Int(1), args.Error(2)
}

func (m *MockProblemRepo) Update(ctx context.Context, problem *domain.Problem) error {
	args := m.Called(ctx, problem)
	return args.Error(0)
}
