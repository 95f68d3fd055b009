package form

import (
	"fmt"
	"strconv"
	"strings"

	"probimport/internal/domain"
	"probimport/internal/port"
)

// Singleton field identifiers of the problem form.
const (
	FieldTitle        = "id_title"
	FieldDescription  = "id_description"
	FieldInputFormat  = "id_input_format"
	FieldOutputFormat = "id_output_format"
	FieldSampleInput  = "id_sample_input"
	FieldSampleOutput = "id_sample_output"
	FieldHint         = "id_hint"
	FieldTimeLimit    = "id_time_limit"
	FieldMemoryLimit  = "id_memory_limit"
	FieldDifficulty   = "id_difficulty"
)

// TestCasePrefix is the inline formset prefix of test case rows.
const TestCasePrefix = "testcases"

var problemFields = []struct {
	id   string
	kind domain.ControlKind
}{
	{FieldTitle, domain.ControlInput},
	{FieldDescription, domain.ControlTextarea},
	{FieldInputFormat, domain.ControlTextarea},
	{FieldOutputFormat, domain.ControlTextarea},
	{FieldSampleInput, domain.ControlTextarea},
	{FieldSampleOutput, domain.ControlTextarea},
	{FieldHint, domain.ControlTextarea},
	{FieldTimeLimit, domain.ControlInput},
	{FieldMemoryLimit, domain.ControlInput},
	{FieldDifficulty, domain.ControlSelect},
}

// Form is an in-memory problem edit form: singleton controls plus the test
// case formset. It implements port.Form.
type Form struct {
	fields    map[string]*Control
	TestCases *Formset
}

// New creates a form holding only the given controls and an empty formset.
func New(testCases *Formset, controls ...*Control) *Form {
	f := &Form{fields: make(map[string]*Control, len(controls)), TestCases: testCases}
	for _, c := range controls {
		f.fields[c.Name()] = c
	}
	return f
}

// NewProblemForm creates a blank problem form with every singleton field.
func NewProblemForm(latency LatencyFunc) *Form {
	controls := make([]*Control, 0, len(problemFields))
	for _, pf := range problemFields {
		controls = append(controls, NewControl(pf.id, pf.kind))
	}
	return New(NewFormset(TestCasePrefix, latency), controls...)
}

func (f *Form) Field(id string) (port.Control, bool) {
	c, ok := f.fields[id]
	if !ok {
		return nil, false
	}
	return c, true
}

// Value returns a field's current value, or "" when the field does not exist.
func (f *Form) Value(id string) string {
	if c, ok := f.fields[id]; ok {
		return c.Value()
	}
	return ""
}

func (f *Form) set(id, value string) {
	if c, ok := f.fields[id]; ok {
		c.SetValue(value)
	}
}

// Load renders an existing problem into the form, test cases included.
func (f *Form) Load(p *domain.Problem) {
	f.set(FieldTitle, p.Title)
	f.set(FieldDescription, p.Description)
	f.set(FieldInputFormat, p.InputFormat)
	f.set(FieldOutputFormat, p.OutputFormat)
	f.set(FieldSampleInput, p.SampleInput)
	f.set(FieldSampleOutput, p.SampleOutput)
	f.set(FieldHint, p.Hint)
	if p.TimeLimitMs > 0 {
		f.set(FieldTimeLimit, strconv.Itoa(p.TimeLimitMs))
	}
	if p.MemoryLimitMb > 0 {
		f.set(FieldMemoryLimit, strconv.Itoa(p.MemoryLimitMb))
	}
	f.set(FieldDifficulty, string(p.Difficulty))
	for _, tc := range p.TestCases {
		f.TestCases.Append(tc)
	}
}

// Problem reads the submitted form back into a problem. Rows flagged for
// deletion and blank rows are skipped.
func (f *Form) Problem() (*domain.Problem, error) {
	p := &domain.Problem{
		Title:        f.Value(FieldTitle),
		Description:  f.Value(FieldDescription),
		InputFormat:  f.Value(FieldInputFormat),
		OutputFormat: f.Value(FieldOutputFormat),
		SampleInput:  f.Value(FieldSampleInput),
		SampleOutput: f.Value(FieldSampleOutput),
		Hint:         f.Value(FieldHint),
		Difficulty:   domain.Difficulty(f.Value(FieldDifficulty)),
	}

	var err error
	if p.TimeLimitMs, err = intValue(f.Value(FieldTimeLimit)); err != nil {
		return nil, fmt.Errorf("form.Problem time limit: %w", err)
	}
	if p.MemoryLimitMb, err = intValue(f.Value(FieldMemoryLimit)); err != nil {
		return nil, fmt.Errorf("form.Problem memory limit: %w", err)
	}
	if p.Difficulty == "" {
		p.Difficulty = domain.DifficultyEasy
	}
	if !domain.ValidDifficulties[p.Difficulty] {
		return nil, domain.ErrInvalidDifficulty
	}

	for _, r := range f.TestCases.Rows() {
		row := r.(*Row)
		if row.Deleted() {
			continue
		}
		in, out := row.Control(SuffixInput).Value(), row.Control(SuffixOutput).Value()
		if in == "" && out == "" {
			continue
		}
		p.TestCases = append(p.TestCases, domain.TestCase{
			Input:    in,
			Output:   out,
			IsSample: row.Control(SuffixIsSample).Checked(),
			Position: len(p.TestCases),
		})
	}
	return p, nil
}

func intValue(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
