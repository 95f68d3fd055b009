package port

import "probimport/internal/domain"

// MarkdownParser extracts a problem payload from markdown text.
type MarkdownParser interface {
	Parse(text string) (*domain.DocumentPayload, error)
}
