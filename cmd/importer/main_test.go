package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probimport/internal/domain"
)

func TestParseArgs(t *testing.T) {
	id := uuid.New()
	opts, err := parseArgs([]string{"-file", "p.md", "-problem", id.String(), "-yes", "-preview-xlsx", "out.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "p.md", opts.file)
	assert.Equal(t, id, opts.problemID)
	assert.True(t, opts.yes)
	assert.Equal(t, "out.xlsx", opts.previewXLSX)
	assert.False(t, opts.dryRun)
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"-yes"}},
		{"bad problem id", []string{"-file", "p.md", "-problem", "42"}},
		{"stray argument", []string{"-file", "p.md", "extra"}},
		{"unknown flag", []string{"-file", "p.md", "-force"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestPageBase(t *testing.T) {
	id := uuid.MustParse("6f1c1a4e-0000-4000-8000-000000000001")
	add := "http://localhost:8080/admin/problems/add/"

	assert.Equal(t, add, pageBase(add, uuid.Nil))
	assert.Equal(t, "http://localhost:8080/admin/problems/"+id.String()+"/change/", pageBase(add, id))
}

func TestReadText_Stdin(t *testing.T) {
	text, err := readText("-", strings.NewReader("# A+B\n"))
	require.NoError(t, err)
	assert.Equal(t, "# A+B\n", text)

	_, err = readText("-", strings.NewReader("  \n"))
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirm(strings.NewReader("y\n"), &out))
	assert.True(t, confirm(strings.NewReader(" YES \n"), &out))
	assert.False(t, confirm(strings.NewReader("\n"), &out))
	assert.False(t, confirm(strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "[y/N]")
}
