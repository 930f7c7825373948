// Package core holds the shared error taxonomy for the assistant.
package core

import (
	"errors"
	"fmt"
)

// ErrorType categorizes errors at the collaborator boundaries.
type ErrorType string

const (
	// ErrModel covers chat-model call failures. Fatal to the current
	// turn; session state stays valid for the next one.
	ErrModel ErrorType = "model_error"

	// ErrTool covers tool invocation failures. Fed back into the model
	// loop as a structured tool result, not surfaced to the user.
	ErrTool ErrorType = "tool_error"

	// ErrMalformedCommand covers bad structured control input on the
	// live connection (reset/intro). Session state is unchanged.
	ErrMalformedCommand ErrorType = "malformed_command"

	// ErrTranscription covers speech-to-text failures.
	ErrTranscription ErrorType = "transcription_error"

	// ErrSynthesis covers text-to-speech failures.
	ErrSynthesis ErrorType = "synthesis_error"

	// ErrInvalidRequest covers request validation failures.
	ErrInvalidRequest ErrorType = "invalid_request_error"

	// ErrRateLimit and ErrOverloaded map upstream throttling.
	ErrRateLimit  ErrorType = "rate_limit_error"
	ErrOverloaded ErrorType = "overloaded_error"
)

// Error is a categorized error crossing a collaborator boundary.
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    string    `json:"code,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code: %s)", e.Type, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsRetryable reports whether retrying the same call may succeed.
// Retry policy itself belongs to the transport, not the core.
func (e *Error) IsRetryable() bool {
	switch e.Type {
	case ErrRateLimit, ErrOverloaded, ErrSynthesis:
		return true
	default:
		return false
	}
}

// NewError creates a categorized error.
func NewError(t ErrorType, message string) *Error {
	return &Error{Type: t, Message: message}
}

// WrapError categorizes an underlying error.
func WrapError(t ErrorType, underlying error) *Error {
	return &Error{Type: t, Message: underlying.Error(), cause: underlying}
}

// TypeOf returns the category of err, or "" if err is not a *core.Error.
func TypeOf(err error) ErrorType {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ""
}
