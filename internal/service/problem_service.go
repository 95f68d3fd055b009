package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"probimport/internal/domain"
	"probimport/internal/port"
)

const (
	defaultTimeLimitMs   = 1000
	defaultMemoryLimitMb = 128
)

// TestCaseInput is one test case of a ProblemInput.
type TestCaseInput struct {
	Input    string `json:"input"`
	Output   string `json:"output"`
	IsSample bool   `json:"is_sample"`
}

// ProblemInput is the DTO for creating or replacing a problem.
type ProblemInput struct {
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description"`
	InputFormat   string            `json:"input_format"`
	OutputFormat  string            `json:"output_format"`
	SampleInput   string            `json:"sample_input"`
	SampleOutput  string            `json:"sample_output"`
	Hint          string            `json:"hint"`
	TimeLimitMs   int               `json:"time_limit"`
	MemoryLimitMb int               `json:"memory_limit"`
	Difficulty    domain.Difficulty `json:"difficulty"`
	TestCases     []TestCaseInput   `json:"test_cases"`
}

// Problem converts the input into an unsaved problem.
func (in *ProblemInput) Problem() *domain.Problem {
	p := &domain.Problem{
		Title:         in.Title,
		Description:   in.Description,
		InputFormat:   in.InputFormat,
		OutputFormat:  in.OutputFormat,
		SampleInput:   in.SampleInput,
		SampleOutput:  in.SampleOutput,
		Hint:          in.Hint,
		TimeLimitMs:   in.TimeLimitMs,
		MemoryLimitMb: in.MemoryLimitMb,
		Difficulty:    in.Difficulty,
	}
	for _, tc := range in.TestCases {
		p.TestCases = append(p.TestCases, domain.TestCase{Input: tc.Input, Output: tc.Output, IsSample: tc.IsSample})
	}
	return p
}

// ProblemService defines the problem store contract behind the problem form.
type ProblemService interface {
	Create(ctx context.Context, input ProblemInput) (*domain.Problem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Problem, error)
	List(ctx context.Context, offset, limit int) ([]domain.Problem, int, error)
	Update(ctx context.Context, id uuid.UUID, input ProblemInput) (*domain.Problem, error)
	// Save stores a problem read back from a submitted form: a nil ID creates
	// it, any other ID replaces the stored problem and its test cases.
	Save(ctx context.Context, problem *domain.Problem) (*domain.Problem, error)
}

type problemService struct {
	repo port.ProblemRepository
}

// NewProblemService creates a new ProblemService implementation.
func NewProblemService(repo port.ProblemRepository) ProblemService {
	return &problemService{repo: repo}
}

func (s *problemService) Create(ctx context.Context, input ProblemInput) (*domain.Problem, error) {
	return s.Save(ctx, input.Problem())
}

func (s *problemService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *problemService) List(ctx context.Context, offset, limit int) ([]domain.Problem, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *problemService) Update(ctx context.Context, id uuid.UUID, input ProblemInput) (*domain.Problem, error) {
	p := input.Problem()
	p.ID = id
	return s.Save(ctx, p)
}

func (s *problemService) Save(ctx context.Context, problem *domain.Problem) (*domain.Problem, error) {
	if err := normalize(problem); err != nil {
		return nil, err
	}

	if problem.ID == uuid.Nil {
		if err := s.repo.Create(ctx, problem); err != nil {
			return nil, fmt.Errorf("problem.Save: %w", err)
		}
		return problem, nil
	}

	existing, err := s.repo.GetByID(ctx, problem.ID)
	if err != nil {
		return nil, err
	}
	problem.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, problem); err != nil {
		return nil, fmt.Errorf("problem.Save: %w", err)
	}
	return problem, nil
}

// normalize applies the form defaults, validates, and renumbers test cases.
func normalize(p *domain.Problem) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.ErrTitleRequired
	}
	if p.TimeLimitMs <= 0 {
		p.TimeLimitMs = defaultTimeLimitMs
	}
	if p.MemoryLimitMb <= 0 {
		p.MemoryLimitMb = defaultMemoryLimitMb
	}
	if p.Difficulty == "" {
		p.Difficulty = domain.DifficultyEasy
	}
	if !domain.ValidDifficulties[p.Difficulty] {
		return domain.ErrInvalidDifficulty
	}
	for i := range p.TestCases {
		p.TestCases[i].Position = i
	}
	return nil
}
