package schema

import (
	"encoding/json"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

const (
	// ToolChoiceGenerate lets the model decide which permitted tool to call,
	// executes it and generates the final answer from the tool output
	ToolChoiceGenerate = "generate"

	// ToolChoiceExecute executes the tool calls the model requests and
	// returns the tool output without a final generation
	ToolChoiceExecute = "execute"

	// ToolChoiceNone disables tool calling
	ToolChoiceNone = "none"
)

const (
	FinishReasonStop      = "stop"
	FinishReasonToolCalls = "tool_calls"
	FinishReasonLength    = "length"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatMessage is a single message in a conversation
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a function invocation requested by the model
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction is the name and serialized arguments of a tool call
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatRequest represents a request for a chat completion with remote tools
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Model       string        `json:"model,omitempty"`
	User        string        `json:"user,omitempty"`
	Tools       []string      `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
	MaxTokens   uint          `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

// ChatResponse represents the response of a chat completion
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is one completion alternative
type Choice struct {
	Index        uint          `json:"index"`
	Message      ChatMessage   `json:"message"`
	FinishReason string        `json:"finish_reason,omitempty"`
	ToolMessages []ChatMessage `json:"tool_messages,omitempty"`
}

// Usage counts tokens consumed over all model rounds
type Usage struct {
	PromptTokens     uint64 `json:"prompt_tokens"`
	CompletionTokens uint64 `json:"completion_tokens"`
	TotalTokens      uint64 `json:"total_tokens"`
}

// CompletionRequest is a single round sent to the upstream model
type CompletionRequest struct {
	Model    string          `json:"model"`
	User     string          `json:"user,omitempty"`
	Messages []ChatMessage   `json:"messages"`
	Tools    []FormattedTool `json:"tools,omitempty"`
}

// Completion is a single round returned by the upstream model
type Completion struct {
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
	Usage        Usage       `json:"usage"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewSystemMessage returns a system message
func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// NewUserMessage returns a user message
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// NewToolMessage returns the result of a tool call
func NewToolMessage(call ToolCall, content string) ChatMessage {
	return ChatMessage{Role: RoleTool, Name: call.Function.Name, ToolCallID: call.ID, Content: content}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Decode unmarshals the serialized arguments of the tool call. Empty
// arguments decode as an empty object.
func (c ToolCall) Decode(v any) error {
	if c.Function.Arguments == "" {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal([]byte(c.Function.Arguments), v)
}

// FirstChoice returns the first choice, or nil when there are no choices
func (r *ChatResponse) FirstChoice() *Choice {
	if r == nil || len(r.Choices) == 0 {
		return nil
	}
	return &r.Choices[0]
}

// FirstContent returns the text content of the first choice, or empty string
func (r *ChatResponse) FirstContent() string {
	if choice := r.FirstChoice(); choice != nil {
		return choice.Message.Content
	}
	return ""
}

// FirstToolCalls returns the tool calls of the first choice, or nil
func (r *ChatResponse) FirstToolCalls() []ToolCall {
	if choice := r.FirstChoice(); choice != nil {
		return choice.Message.ToolCalls
	}
	return nil
}

// FirstToolContent returns the content of the first tool message of the
// first choice, or empty string
func (r *ChatResponse) FirstToolContent() string {
	if choice := r.FirstChoice(); choice != nil {
		for _, message := range choice.ToolMessages {
			if message.Role == RoleTool {
				return message.Content
			}
		}
	}
	return ""
}

// Add accumulates token usage
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ChatRequest) String() string {
	return types.Stringify(r)
}

func (r ChatResponse) String() string {
	return types.Stringify(r)
}

func (m ChatMessage) String() string {
	return types.Stringify(m)
}
