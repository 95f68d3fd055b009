// Package binder writes structured document fields into the host form's
// singleton controls.
package binder

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"probimport/internal/domain"
	"probimport/internal/form"
	"probimport/internal/logger"
	"probimport/internal/port"
)

// Binder assigns values to named form controls. A missing control or an empty
// value leaves the form untouched.
type Binder struct {
	form port.Form
	log  *zap.Logger
}

// New creates a Binder over the given form.
func New(f port.Form, log *zap.Logger) *Binder {
	return &Binder{form: f, log: logger.OrNop(log)}
}

// Bind writes value into the control identified by fieldID and reports
// whether a write happened.
func (b *Binder) Bind(fieldID, value string) bool {
	if value == "" {
		return false
	}
	c, ok := b.form.Field(fieldID)
	if !ok {
		b.log.Debug("binder: field not found, skipping",
			zap.String("field", fieldID), zap.Error(domain.ErrFieldMissing))
		return false
	}
	c.SetValue(value)
	return true
}

// BindInt writes a positive integer as its decimal form.
func (b *Binder) BindInt(fieldID string, value int) bool {
	if value <= 0 {
		return false
	}
	return b.Bind(fieldID, strconv.Itoa(value))
}

// BindDocument writes every singleton field of doc and returns how many
// controls were written.
func (b *Binder) BindDocument(doc *domain.StructuredDocument) int {
	if doc == nil {
		return 0
	}
	n := 0
	count := func(ok bool) {
		if ok {
			n++
		}
	}

	count(b.Bind(form.FieldTitle, doc.Title))
	count(b.Bind(form.FieldDescription, doc.Description))
	count(b.Bind(form.FieldInputFormat, doc.InputFormat))
	count(b.Bind(form.FieldOutputFormat, doc.OutputFormat))

	in, out := SampleText(doc)
	count(b.Bind(form.FieldSampleInput, in))
	count(b.Bind(form.FieldSampleOutput, out))

	count(b.Bind(form.FieldHint, doc.Hint))
	count(b.BindInt(form.FieldTimeLimit, doc.TimeLimitMs))
	count(b.BindInt(form.FieldMemoryLimit, doc.MemoryLimitMb))
	count(b.Bind(form.FieldDifficulty, string(doc.Difficulty)))
	return n
}

// SampleText builds the singleton sample input/output text. Test cases are
// joined by a blank line and numbered when there is more than one; without
// test cases the legacy sample is used.
func SampleText(doc *domain.StructuredDocument) (input, output string) {
	if len(doc.TestCases) == 0 {
		if doc.LegacySample == nil {
			return "", ""
		}
		return doc.LegacySample.Input, doc.LegacySample.Output
	}
	if len(doc.TestCases) == 1 {
		return doc.TestCases[0].Input, doc.TestCases[0].Output
	}

	ins := make([]string, len(doc.TestCases))
	outs := make([]string, len(doc.TestCases))
	for i, tc := range doc.TestCases {
		ins[i] = fmt.Sprintf("Sample Input %d:\n%s", i+1, tc.Input)
		outs[i] = fmt.Sprintf("Sample Output %d:\n%s", i+1, tc.Output)
	}
	return strings.Join(ins, "\n\n"), strings.Join(outs, "\n\n")
}
