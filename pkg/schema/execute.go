package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ExecuteToolRequest runs a tool by name with free-form input
type ExecuteToolRequest struct {
	ToolName string         `json:"tool_name"`
	Input    map[string]any `json:"input,omitempty"`
	UserID   string         `json:"user_id,omitempty"`
}

// ExecuteToolResponse is the outcome of a tool execution
type ExecuteToolResponse struct {
	ID          string      `json:"id"`
	ExecutionID string      `json:"execution_id"`
	Duration    float64     `json:"duration"`
	FinishedAt  time.Time   `json:"finished_at"`
	Success     bool        `json:"success"`
	Output      *ToolOutput `json:"output,omitempty"`
}

// ToolOutput is either a value or an error
type ToolOutput struct {
	Value any              `json:"value,omitempty"`
	Error *ToolOutputError `json:"error,omitempty"`
}

// ToolOutputError describes why a tool failed, and whether the caller may retry
type ToolOutputError struct {
	Message                 string `json:"message"`
	DeveloperMessage        string `json:"developer_message,omitempty"`
	AdditionalPromptContent string `json:"additional_prompt_content,omitempty"`
	CanRetry                bool   `json:"can_retry"`
	RetryAfterMs            int64  `json:"retry_after_ms,omitempty"`
}

// HealthResponse reports the service status
type HealthResponse struct {
	Healthy  bool     `json:"healthy"`
	Version  string   `json:"version,omitempty"`
	Toolkits []string `json:"toolkits,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Value returns the output value, or nil when the tool failed or returned nothing
func (r *ExecuteToolResponse) Value() any {
	if r == nil || r.Output == nil {
		return nil
	}
	return r.Output.Value
}

// Strings returns the output value as a list of strings. A single string
// value returns a one-element list; other values return nil.
func (r *ExecuteToolResponse) Strings() []string {
	switch v := r.Value().(type) {
	case []string:
		return v
	case string:
		return []string{v}
	case []any:
		result := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ExecuteToolRequest) String() string {
	return types.Stringify(r)
}

func (r ExecuteToolResponse) String() string {
	return types.Stringify(r)
}
