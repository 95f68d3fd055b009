package port

import (
	"context"

	"probimport/internal/domain"
)

// ParseClient turns raw problem text into a structured document.
type ParseClient interface {
	Parse(ctx context.Context, text string) (*domain.StructuredDocument, error)
}
