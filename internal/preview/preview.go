// Package preview projects a parsed document into a read-only summary the
// user confirms before anything is written to the form.
package preview

import (
	"strconv"

	"probimport/internal/domain"
)

const (
	// MaxDescriptionRunes bounds the description shown in the preview.
	MaxDescriptionRunes = 500
	// Ellipsis marks a truncated value.
	Ellipsis = "..."
	// NotFound replaces a field the parser could not extract.
	NotFound = "(not found)"
)

// Entry is one labelled preview line.
type Entry struct {
	Label   string
	Value   string
	Missing bool
}

// Sample is one previewed input/output pair.
type Sample struct {
	Label   string
	Input   string
	Output  string
	Legacy  bool
	Missing bool
}

// View is the rendered preview.
type View struct {
	Title        Entry
	Difficulty   Entry
	TimeLimit    Entry
	MemoryLimit  Entry
	Description  Entry
	InputFormat  Entry
	OutputFormat Entry
	Hint         Entry
	Samples      []Sample
	Truncated    bool
}

// Fields returns the singleton entries in display order.
func (v View) Fields() []Entry {
	return []Entry{
		v.Title, v.Difficulty, v.TimeLimit, v.MemoryLimit,
		v.Description, v.InputFormat, v.OutputFormat, v.Hint,
	}
}

// MissingCount returns how many fields and samples were not found.
func (v View) MissingCount() int {
	n := 0
	for _, e := range v.Fields() {
		if e.Missing {
			n++
		}
	}
	for _, s := range v.Samples {
		if s.Missing {
			n++
		}
	}
	return n
}

// Render builds the preview of doc. It never modifies doc.
func Render(doc *domain.StructuredDocument) View {
	if doc == nil {
		doc = &domain.StructuredDocument{}
	}
	desc, truncated := truncate(doc.Description, MaxDescriptionRunes)
	v := View{
		Title:        text("Title", doc.Title),
		Difficulty:   text("Difficulty", string(doc.Difficulty)),
		TimeLimit:    limit("Time limit", doc.TimeLimitMs, "ms"),
		MemoryLimit:  limit("Memory limit", doc.MemoryLimitMb, "MB"),
		Description:  text("Description", desc),
		InputFormat:  text("Input format", doc.InputFormat),
		OutputFormat: text("Output format", doc.OutputFormat),
		Hint:         text("Hint", doc.Hint),
		Truncated:    truncated,
	}
	v.Samples = samples(doc)
	return v
}

func samples(doc *domain.StructuredDocument) []Sample {
	switch {
	case len(doc.TestCases) > 0:
		out := make([]Sample, len(doc.TestCases))
		for i, tc := range doc.TestCases {
			out[i] = Sample{Label: "Sample " + strconv.Itoa(i+1), Input: tc.Input, Output: tc.Output}
		}
		return out
	case doc.LegacySample != nil:
		s := Sample{Label: "Sample", Input: doc.LegacySample.Input, Output: doc.LegacySample.Output, Legacy: true}
		if s.Input == "" {
			s.Input = NotFound
		}
		if s.Output == "" {
			s.Output = NotFound
		}
		return []Sample{s}
	default:
		return []Sample{{Label: "Sample", Input: NotFound, Output: NotFound, Missing: true}}
	}
}

func text(label, value string) Entry {
	if value == "" {
		return Entry{Label: label, Value: NotFound, Missing: true}
	}
	return Entry{Label: label, Value: value}
}

func limit(label string, value int, unit string) Entry {
	if value <= 0 {
		return Entry{Label: label, Value: NotFound, Missing: true}
	}
	return Entry{Label: label, Value: strconv.Itoa(value) + unit}
}

// truncate cuts s to at most n runes and appends Ellipsis when it did.
func truncate(s string, n int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= n {
		return s, false
	}
	return string(runes[:n]) + Ellipsis, true
}
