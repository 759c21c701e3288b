package review

import (
	"errors"
	"fmt"
)

// Common error types for the review session.
var (
	// ErrSessionActive indicates a session is already in progress and must
	// finish before a new one starts.
	ErrSessionActive = errors.New("review session already in progress")

	// ErrNotInSession indicates the operation requires an active session.
	ErrNotInSession = errors.New("no review session in progress")

	// ErrAnswerHidden indicates a rating was submitted before the answer
	// side was revealed.
	ErrAnswerHidden = errors.New("answer not revealed")

	// ErrAnswerRevealed indicates a reveal was requested twice.
	ErrAnswerRevealed = errors.New("answer already revealed")
)

// ServiceError wraps errors from the review session with additional
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start", "submit_rating")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
