package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probimport/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Len(t, row, len(columns))
	assert.Equal(t, "ID", row[0])
	assert.Equal(t, "Updated At", row[len(row)-1])
}

func TestWriteProblems(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	problems := []domain.Problem{{
		ID:            id,
		Title:         "A+B, again",
		Difficulty:    domain.DifficultyEasy,
		TimeLimitMs:   1000,
		MemoryLimitMb: 128,
		SampleInput:   "1 2\n3 4",
		SampleOutput:  "3\n7",
		TestCases:     []domain.TestCase{{Input: "1 2", Output: "3"}, {Input: "3 4", Output: "7"}},
		CreatedAt:     created,
	}}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteProblems(problems))
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{
		id.String(), "A+B, again", "easy", "1000", "128", "2", "1 2\n3 4", "3\n7", "2025-03-01T08:00:00Z", "",
	}, row)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Problem Set #1", "Problem_Set_1"},
		{"__a__b__", "a_b"},
		{"题目", "problems"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), tt.in)
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "problems_2025-06-30.csv", BuildFilename("problems", now))
}
