package port

import (
	"context"

	"github.com/google/uuid"

	"probimport/internal/domain"
)

// ProblemRepository defines the contract for problem persistence.
// Update replaces the problem's test cases with the ones carried by the problem.
type ProblemRepository interface {
	Create(ctx context.Context, problem *domain.Problem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Problem, error)
	List(ctx context.Context, offset, limit int) ([]domain.Problem, int, error)
	Update(ctx context.Context, problem *domain.Problem) error
}
