package binder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"probimport/internal/binder"
	"probimport/internal/domain"
	"probimport/internal/form"
)

func TestBinder_Bind_WritesEveryKind(t *testing.T) {
	f := form.NewProblemForm(nil)
	b := binder.New(f, nil)

	assert.True(t, b.Bind(form.FieldTitle, "A+B"))
	assert.True(t, b.Bind(form.FieldDescription, "Add."))
	assert.True(t, b.Bind(form.FieldDifficulty, "hard"))

	assert.Equal(t, "A+B", f.Value(form.FieldTitle))
	assert.Equal(t, "Add.", f.Value(form.FieldDescription))
	assert.Equal(t, "hard", f.Value(form.FieldDifficulty))
}

func TestBinder_Bind_EmptyValueIsNoop(t *testing.T) {
	f := form.NewProblemForm(nil)
	c, _ := f.Field(form.FieldHint)
	c.SetValue("keep me")

	assert.False(t, binder.New(f, nil).Bind(form.FieldHint, ""))
	assert.Equal(t, "keep me", f.Value(form.FieldHint))
}

func TestBinder_Bind_MissingFieldIsNoop(t *testing.T) {
	f := form.New(form.NewFormset(form.TestCasePrefix, nil))

	assert.False(t, binder.New(f, nil).Bind(form.FieldTitle, "A+B"))
}

func TestBinder_Bind_Idempotent(t *testing.T) {
	f := form.NewProblemForm(nil)
	b := binder.New(f, nil)

	b.Bind(form.FieldTitle, "A+B")
	b.Bind(form.FieldTitle, "A+B")

	assert.Equal(t, "A+B", f.Value(form.FieldTitle))
}

func TestBinder_BindInt(t *testing.T) {
	f := form.NewProblemForm(nil)
	b := binder.New(f, nil)

	assert.False(t, b.BindInt(form.FieldTimeLimit, 0))
	assert.True(t, b.BindInt(form.FieldTimeLimit, 2000))
	assert.Equal(t, "2000", f.Value(form.FieldTimeLimit))
}

func TestBinder_BindDocument(t *testing.T) {
	f := form.NewProblemForm(nil)
	b := binder.New(f, nil)

	n := b.BindDocument(&domain.StructuredDocument{
		Title:         "A+B",
		Difficulty:    domain.DifficultyMedium,
		TimeLimitMs:   1000,
		MemoryLimitMb: 256,
		TestCases:     []domain.SamplePair{{Input: "1 2", Output: "3"}},
	})

	assert.Equal(t, 6, n)
	assert.Equal(t, "medium", f.Value(form.FieldDifficulty))
	assert.Equal(t, "256", f.Value(form.FieldMemoryLimit))
	assert.Equal(t, "1 2", f.Value(form.FieldSampleInput))
	assert.Equal(t, "3", f.Value(form.FieldSampleOutput))
	assert.Equal(t, "", f.Value(form.FieldHint))
}

func TestSampleText_MultipleCasesAreNumbered(t *testing.T) {
	in, out := binder.SampleText(&domain.StructuredDocument{
		TestCases: []domain.SamplePair{{Input: "1", Output: "2"}, {Input: "3", Output: "4"}},
	})

	assert.Equal(t, "Sample Input 1:\n1\n\nSample Input 2:\n3", in)
	assert.Equal(t, "Sample Output 1:\n2\n\nSample Output 2:\n4", out)
}

func TestSampleText_LegacyFallback(t *testing.T) {
	in, out := binder.SampleText(&domain.StructuredDocument{
		LegacySample: &domain.SamplePair{Input: "5", Output: "25"},
	})

	assert.Equal(t, "5", in)
	assert.Equal(t, "25", out)

	in, out = binder.SampleText(&domain.StructuredDocument{})
	assert.Empty(t, in)
	assert.Empty(t, out)
}
