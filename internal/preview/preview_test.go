package preview_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"probimport/internal/domain"
	"probimport/internal/preview"
)

func fullDocument() *domain.StructuredDocument {
	return &domain.StructuredDocument{
		Title:         "A+B",
		Difficulty:    domain.DifficultyHard,
		TimeLimitMs:   1500,
		MemoryLimitMb: 64,
		Description:   "Add them.",
		InputFormat:   "two ints",
		OutputFormat:  "one int",
		Hint:          "use int64",
		TestCases: []domain.SamplePair{
			{Input: "1 2", Output: "3"},
			{Input: "2 2", Output: "4"},
		},
	}
}

func TestRender_AllFields(t *testing.T) {
	v := preview.Render(fullDocument())

	assert.Equal(t, "A+B", v.Title.Value)
	assert.Equal(t, "hard", v.Difficulty.Value)
	assert.Equal(t, "1500ms", v.TimeLimit.Value)
	assert.Equal(t, "64MB", v.MemoryLimit.Value)
	assert.False(t, v.Truncated)
	assert.Equal(t, 0, v.MissingCount())
	require.Len(t, v.Samples, 2)
	assert.Equal(t, "Sample 2", v.Samples[1].Label)
	assert.Equal(t, "4", v.Samples[1].Output)
	assert.False(t, v.Samples[0].Legacy)
}

func TestRender_TruncatesDescriptionOnly(t *testing.T) {
	doc := fullDocument()
	long := strings.Repeat("题", preview.MaxDescriptionRunes+20)
	doc.Description = long

	v := preview.Render(doc)

	assert.True(t, v.Truncated)
	assert.Equal(t, strings.Repeat("题", preview.MaxDescriptionRunes)+preview.Ellipsis, v.Description.Value)
	assert.Equal(t, long, doc.Description, "document must not be modified")
}

func TestRender_ExactLimitNotTruncated(t *testing.T) {
	doc := fullDocument()
	doc.Description = strings.Repeat("a", preview.MaxDescriptionRunes)

	v := preview.Render(doc)

	assert.False(t, v.Truncated)
	assert.Equal(t, doc.Description, v.Description.Value)
}

func TestRender_MissingFieldsShowPlaceholder(t *testing.T) {
	v := preview.Render(&domain.StructuredDocument{Title: "Only title"})

	assert.False(t, v.Title.Missing)
	for _, e := range []preview.Entry{v.Difficulty, v.TimeLimit, v.MemoryLimit, v.Description, v.InputFormat, v.OutputFormat, v.Hint} {
		assert.True(t, e.Missing, e.Label)
		assert.Equal(t, preview.NotFound, e.Value, e.Label)
	}
	require.Len(t, v.Samples, 1)
	assert.True(t, v.Samples[0].Missing)
	assert.Equal(t, 8, v.MissingCount())
}

func TestRender_LegacySample(t *testing.T) {
	doc := &domain.StructuredDocument{LegacySample: &domain.SamplePair{Input: "5"}}

	v := preview.Render(doc)

	require.Len(t, v.Samples, 1)
	assert.True(t, v.Samples[0].Legacy)
	assert.Equal(t, "5", v.Samples[0].Input)
	assert.Equal(t, preview.NotFound, v.Samples[0].Output)
}

func TestRender_NilDocument(t *testing.T) {
	v := preview.Render(nil)
	assert.True(t, v.Title.Missing)
}

func TestView_Text(t *testing.T) {
	out := preview.Render(fullDocument()).Text()

	assert.Contains(t, out, "Title:")
	assert.Contains(t, out, "A+B")
	assert.Contains(t, out, "1500ms")
	assert.Contains(t, out, "[Sample 1]")
	assert.Contains(t, out, "output: 4")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, preview.WriteXLSX(&buf, preview.Render(fullDocument())))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Fields", "Samples"}, f.GetSheetList())

	title, err := f.GetCellValue("Fields", "B2")
	require.NoError(t, err)
	assert.Equal(t, "A+B", title)

	rows, err := f.GetRows("Samples")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.GreaterOrEqual(t, len(rows[2]), 4)
	assert.Equal(t, []string{"2", "Sample 2", "2 2", "4"}, rows[2][:4])
}
