package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"probimport/internal/domain"
)

// MockParseClient is a mock implementation of port.ParseClient.
type MockParseClient struct {
	mock.Mock
}

func (m *MockParseClient) Parse(ctx context.Context, text string) (*domain.StructuredDocument, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StructuredDocument), args.Error(1)
}
