package domain

import (
	"time"

	"github.com/google/uuid"
)

// Problem is a persisted problem definition as edited through the problem form.
type Problem struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	InputFormat   string     `db:"input_format" json:"input_format"`
	OutputFormat  string     `db:"output_format" json:"output_format"`
	SampleInput   string     `db:"sample_input" json:"sample_input"`
	SampleOutput  string     `db:"sample_output" json:"sample_output"`
	Hint          string     `db:"hint" json:"hint"`
	TimeLimitMs   int        `db:"time_limit" json:"time_limit"`
	MemoryLimitMb int        `db:"memory_limit" json:"memory_limit"`
	Difficulty    Difficulty `db:"difficulty" json:"difficulty"`
	TestCases     []TestCase `db:"-" json:"test_cases"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// TestCase is one input/output pair attached to a problem.
type TestCase struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ProblemID uuid.UUID `db:"problem_id" json:"problem_id"`
	Input     string    `db:"input" json:"input"`
	Output    string    `db:"output" json:"output"`
	IsSample  bool      `db:"is_sample" json:"is_sample"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
