package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrEmptyInput           = errors.New("markdown text is empty")
	ErrTextTooLong          = errors.New("markdown text exceeds maximum allowed size")
	ErrRemoteFailure        = errors.New("parse service failure")
	ErrFieldMissing         = errors.New("form control not found")
	ErrRowCreationAmbiguous = errors.New("created row could not be identified")
	ErrApplyInProgress      = errors.New("an apply is already in progress")
	ErrInvalidTransition    = errors.New("invalid import state transition")
	ErrNoDocument           = errors.New("no parsed document to apply")
	ErrInvalidDifficulty    = errors.New("invalid difficulty")
	ErrSessionClosed        = errors.New("import session was closed")
	ErrTitleRequired        = errors.New("problem title is required")
)

// RemoteError is a failure reported by, or while reaching, the parse service.
// Message is meant to be shown to the user verbatim.
type RemoteError struct {
	Message    string
	StatusCode int
	// RetryAfter is the wait the service asked for, zero when it gave none.
	RetryAfter time.Duration
	Err        error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is reports every RemoteError as ErrRemoteFailure.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteFailure
}

// Unavailable reports whether the failure came from the service being
// unreachable, overloaded or broken rather than from the request itself.
func (e *RemoteError) Unavailable() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

// NewRemoteError creates a RemoteError. A blank message is replaced by a generic one.
func NewRemoteError(message string, statusCode int, err error) *RemoteError {
	if message == "" {
		message = "parse failed"
	}
	return &RemoteError{Message: message, StatusCode: statusCode, Err: err}
}
