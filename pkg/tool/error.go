package tool

import (
	"errors"
	"time"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolError is returned by a tool which failed in a way the caller can act
// upon. When CanRetry is set, the model may correct its input and call the
// tool again after RetryAfter.
type ToolError struct {
	Message                 string
	DeveloperMessage        string
	AdditionalPromptContent string
	CanRetry                bool
	RetryAfter              time.Duration
	cause                   error
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRetryableError returns a tool error which the caller may retry
func NewRetryableError(cause error, message, developerMessage, prompt string, retryAfter time.Duration) *ToolError {
	return &ToolError{
		Message:                 message,
		DeveloperMessage:        developerMessage,
		AdditionalPromptContent: prompt,
		CanRetry:                true,
		RetryAfter:              retryAfter,
		cause:                   cause,
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e *ToolError) Error() string {
	return e.Message
}

// Unwrap returns ErrToolFailed and the underlying cause
func (e *ToolError) Unwrap() []error {
	if e.cause != nil {
		return []error{arcade.ErrToolFailed, e.cause}
	}
	return []error{arcade.ErrToolFailed}
}

// Output converts any error into the wire representation of a tool failure
func Output(err error) *schema.ToolOutputError {
	if err == nil {
		return nil
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return &schema.ToolOutputError{
			Message:                 toolErr.Message,
			DeveloperMessage:        toolErr.DeveloperMessage,
			AdditionalPromptContent: toolErr.AdditionalPromptContent,
			CanRetry:                toolErr.CanRetry,
			RetryAfterMs:            toolErr.RetryAfter.Milliseconds(),
		}
	}
	return &schema.ToolOutputError{
		Message: err.Error(),
	}
}
