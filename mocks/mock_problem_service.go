package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"probimport/internal/domain"
	"probimport/internal/service"
)

// MockProblemService is a mock implementation of service.ProblemService.
type MockProblemService struct {
	mock.Mock
}

func (m *MockProblemService) Create(ctx context.Context, input service.ProblemInput) (*domain.Problem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}

func (m *MockProblemService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}

func (m *MockProblemService) List(ctx context.Context, offset, limit int) ([]domain.Problem, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Problem), args.Int(1), args.Error(2)
}

func (m *MockProblemService) Update(ctx context.Context, id uuid.UUID, input service.ProblemInput) (*domain.Problem, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}

func (m *MockProblemService) Save(ctx context.Context, problem *domain.Problem) (*domain.Problem, error) {
	args := m.Called(ctx, problem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}
