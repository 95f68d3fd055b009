package mocks

import (
	"github.com/stretchr/testify/mock"

	"probimport/internal/domain"
)

// MockMarkdownParser is a mock implementation of port.MarkdownParser.
type MockMarkdownParser struct {
	mock.Mock
}

func (m *MockMarkdownParser) Parse(text string) (*domain.DocumentPayload, error) {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentPayload), args.Error(1)
}
