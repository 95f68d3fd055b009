package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"probimport/internal/domain"
	"probimport/internal/port"
)

type problemRepo struct {
	db *sqlx.DB
}

// NewProblemRepo creates a new PostgreSQL-backed ProblemRepository.
func NewProblemRepo(db *sqlx.DB) port.ProblemRepository {
	return &problemRepo{db: db}
}

const problemColumns = `id, title, description, input_format, output_format, sample_input,
	sample_output, hint, time_limit, memory_limit, difficulty, created_at, updated_at`

func (r *problemRepo) Create(ctx context.Context, problem *domain.Problem) error {
	problem.ID = uuid.New()
	now := time.Now().UTC()
	problem.CreatedAt = now
	problem.UpdatedAt = now

	query := `INSERT INTO problems (` + problemColumns + `)
		VALUES (:id, :title, :description, :input_format, :output_format, :sample_input,
			:sample_output, :hint, :time_limit, :memory_limit, :difficulty, :created_at, :updated_at)`

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, problem); err != nil {
			return err
		}
		return insertTestCases(ctx, tx, problem)
	})
	if err != nil {
		return fmt.Errorf("problemRepo.Create: %w", err)
	}
	return nil
}

func (r *problemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	var problem domain.Problem
	err := r.db.GetContext(ctx, &problem, "SELECT "+problemColumns+" FROM problems WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("problemRepo.GetByID: %w", err)
	}

	problem.TestCases = []domain.TestCase{}
	err = r.db.SelectContext(ctx, &problem.TestCases,
		"SELECT * FROM test_cases WHERE problem_id = $1 ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("problemRepo.GetByID test cases: %w", err)
	}
	return &problem, nil
}

func (r *problemRepo) List(ctx context.Context, offset, limit int) ([]domain.Problem, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM problems")
	if err != nil {
		return nil, 0, fmt.Errorf("problemRepo.List count: %w", err)
	}

	var problems []domain.Problem
	err = r.db.SelectContext(ctx, &problems,
		"SELECT "+problemColumns+" FROM problems ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("problemRepo.List: %w", err)
	}
	if len(problems) == 0 {
		return problems, total, nil
	}

	ids := make([]uuid.UUID, len(problems))
	index := make(map[uuid.UUID]int, len(problems))
	for i := range problems {
		ids[i] = problems[i].ID
		index[problems[i].ID] = i
		problems[i].TestCases = []domain.TestCase{}
	}
	query, args, err := sqlx.In("SELECT * FROM test_cases WHERE problem_id IN (?) ORDER BY problem_id, position", ids)
	if err != nil {
		return nil, 0, fmt.Errorf("problemRepo.List test cases: %w", err)
	}
	var cases []domain.TestCase
	if err := r.db.SelectContext(ctx, &cases, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("problemRepo.List test cases: %w", err)
	}
	for _, tc := range cases {
		i := index[tc.ProblemID]
		problems[i].TestCases = append(problems[i].TestCases, tc)
	}
	return problems, total, nil
}

// Update rewrites the problem row and replaces its test cases atomically.
func (r *problemRepo) Update(ctx context.Context, problem *domain.Problem) error {
	problem.UpdatedAt = time.Now().UTC()
	query := `UPDATE problems SET title = :title, description = :description,
		input_format = :input_format, output_format = :output_format,
		sample_input = :sample_input, sample_output = :sample_output, hint = :hint,
		time_limit = :time_limit, memory_limit = :memory_limit, difficulty = :difficulty,
		updated_at = :updated_at
		WHERE id = :id`

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx, query, problem)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM test_cases WHERE problem_id = $1", problem.ID); err != nil {
			return err
		}
		return insertTestCases(ctx, tx, problem)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("problemRepo.Update: %w", err)
	}
	return nil
}

func insertTestCases(ctx context.Context, tx *sqlx.Tx, problem *domain.Problem) error {
	if len(problem.TestCases) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range problem.TestCases {
		tc := &problem.TestCases[i]
		tc.ID = uuid.New()
		tc.ProblemID = problem.ID
		tc.Position = i
		tc.CreatedAt = now
	}
	query := `INSERT INTO test_cases (id, problem_id, input, output, is_sample, position, created_at)
		VALUES (:id, :problem_id, :input, :output, :is_sample, :position, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, problem.TestCases); err != nil {
		return fmt.Errorf("inserting test cases: %w", err)
	}
	return nil
}
