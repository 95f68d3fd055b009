package domain

import (
	"encoding/json"
	"fmt"
)

// SamplePair is one input/output record of a parsed document.
type SamplePair struct {
	Input  string
	Output string
}

// MarshalJSON encodes the pair as a two-element array, the parse service wire shape.
func (p SamplePair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Input, p.Output})
}

// UnmarshalJSON decodes a two-element [input, output] array.
func (p *SamplePair) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decoding sample pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decoding sample pair: want 2 elements, got %d", len(pair))
	}
	p.Input, p.Output = pair[0], pair[1]
	return nil
}

// StructuredDocument is the parsed form of an imported problem text.
// Empty strings and zero limits mean the field was not found.
type StructuredDocument struct {
	Title         string
	Difficulty    Difficulty
	TimeLimitMs   int
	MemoryLimitMb int
	Description   string
	InputFormat   string
	OutputFormat  string
	Hint          string
	LegacySample  *SamplePair
	TestCases     []SamplePair
}

// Records returns the record set an apply writes into the test case rows:
// TestCases when present, otherwise the legacy sample, otherwise nothing.
// The first record is the canonical sample.
func (d *StructuredDocument) Records() []SamplePair {
	if d == nil {
		return nil
	}
	if len(d.TestCases) > 0 {
		out := make([]SamplePair, len(d.TestCases))
		copy(out, d.TestCases)
		return out
	}
	if d.LegacySample != nil {
		return []SamplePair{*d.LegacySample}
	}
	return nil
}

// DocumentPayload is the JSON representation exchanged with the parse service.
type DocumentPayload struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	InputFormat  string       `json:"input_format"`
	OutputFormat string       `json:"output_format"`
	SampleInput  string       `json:"sample_input"`
	SampleOutput string       `json:"sample_output"`
	Hint         string       `json:"hint"`
	TimeLimit    int          `json:"time_limit"`
	MemoryLimit  int          `json:"memory_limit"`
	Difficulty   string       `json:"difficulty"`
	TestCases    []SamplePair `json:"test_cases"`
}

// Document converts the payload into a StructuredDocument.
func (p *DocumentPayload) Document() *StructuredDocument {
	doc := &StructuredDocument{
		Title:         p.Title,
		TimeLimitMs:   p.TimeLimit,
		MemoryLimitMb: p.MemoryLimit,
		Description:   p.Description,
		InputFormat:   p.InputFormat,
		OutputFormat:  p.OutputFormat,
		Hint:          p.Hint,
	}
	if p.Difficulty != "" {
		doc.Difficulty = ParseDifficulty(p.Difficulty)
	}
	if p.SampleInput != "" || p.SampleOutput != "" {
		doc.LegacySample = &SamplePair{Input: p.SampleInput, Output: p.SampleOutput}
	}
	if len(p.TestCases) > 0 {
		doc.TestCases = make([]SamplePair, len(p.TestCases))
		copy(doc.TestCases, p.TestCases)
	}
	return doc
}
