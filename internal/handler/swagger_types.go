package handler

import (
	"probimport/internal/domain"
	"probimport/internal/service"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ProblemRequest represents the create/replace problem request body.
type ProblemRequest struct {
	Title        string                  `json:"title" binding:"required" example:"A+B Problem"`
	Description  string                  `json:"description" example:"Read two integers and print their sum."`
	InputFormat  string                  `json:"input_format" example:"Two integers a and b."`
	OutputFormat string                  `json:"output_format" example:"One integer."`
	SampleInput  string                  `json:"sample_input" example:"1 2"`
	SampleOutput string                  `json:"sample_output" example:"3"`
	Hint         string                  `json:"hint" example:"Mind overflow."`
	TimeLimit    int                     `json:"time_limit" example:"1000"`
	MemoryLimit  int                     `json:"memory_limit" example:"128"`
	Difficulty   domain.Difficulty       `json:"difficulty" example:"easy"`
	TestCases    []service.TestCaseInput `json:"test_cases"`
}

// ParseMarkdownSuccess is the parse endpoint's success body.
type ParseMarkdownSuccess struct {
	Success bool                   `json:"success" example:"true"`
	Data    domain.DocumentPayload `json:"data"`
	Message string                 `json:"message" example:"Markdown解析成功"`
}

// ParseMarkdownFailure is the parse endpoint's failure body.
type ParseMarkdownFailure struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Markdown文本不能为空"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// Response wraps a success response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
