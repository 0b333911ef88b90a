package manager

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	arcade "github.com/mutablelogic/go-arcade"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// allowlist maps the formatted names offered to the model onto tools
type allowlist map[string]allowed

type allowed struct {
	toolkit *tool.Toolkit
	tool    tool.Tool
	name    string
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat runs a chat completion which may call the tools in the request
// allowlist. With tool choice "generate" the requested tools are executed
// and the model is asked again until it answers without tool calls. With
// "execute" the first round of tool calls is executed and their output is
// returned without a final answer.
func (m *Manager) Chat(ctx context.Context, req schema.ChatRequest) (result *schema.ChatResponse, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Chat",
		attribute.String("model", req.Model),
		attribute.StringSlice("tools", req.Tools),
		attribute.String("tool_choice", req.ToolChoice),
	)
	defer func() { endSpan(err) }()

	if m.completer == nil {
		return nil, arcade.ErrNotImplemented.With("no model is configured for chat completions")
	} else if len(req.Messages) == 0 {
		return nil, arcade.ErrBadParameter.With("messages are required")
	}

	// Tool choice
	choice := strings.ToLower(strings.TrimSpace(req.ToolChoice))
	switch choice {
	case "":
		choice = schema.ToolChoiceGenerate
	case schema.ToolChoiceGenerate, schema.ToolChoiceExecute, schema.ToolChoiceNone:
		// No-op
	default:
		return nil, arcade.ErrBadParameter.Withf("unsupported tool_choice %q", req.ToolChoice)
	}

	// Resolve the allowlist
	tools, permitted, err := m.allowlist(req.Tools)
	if err != nil {
		return nil, err
	}
	if choice == schema.ToolChoiceNone {
		tools, permitted = nil, nil
	}

	model := req.Model
	if model == "" {
		model = m.model
	}

	var (
		usage        schema.Usage
		performed    []schema.ToolCall
		toolMessages []schema.ChatMessage
		final        schema.ChatMessage
		finish       string
	)
	messages := append([]schema.ChatMessage{}, req.Messages...)
	for round := uint(0); ; round++ {
		completion, err := m.completer.Complete(ctx, schema.CompletionRequest{
			Model:    model,
			User:     req.User,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			return nil, err
		}
		usage.Add(completion.Usage)
		final, finish = completion.Message, completion.FinishReason

		// Arguments of a truncated completion may be incomplete
		if finish == schema.FinishReasonLength {
			m.logger.Warn("completion truncated", "round", round+1, "tool_calls", len(completion.Message.ToolCalls))
			final.ToolCalls = nil
			break
		}

		// Done when the model answers without calling tools
		calls := completion.Message.ToolCalls
		if len(calls) == 0 || len(permitted) == 0 {
			break
		}

		// Execute the tool calls
		m.logger.Debug("tool calls", "round", round+1, "count", len(calls))
		results, err := m.runToolCalls(ctx, calls, permitted, req.User)
		if err != nil {
			return nil, err
		}
		performed = append(performed, permitted.qualify(calls)...)
		toolMessages = append(toolMessages, results...)
		messages = append(messages, completion.Message)
		messages = append(messages, results...)

		// Return tool output without a generation
		if choice == schema.ToolChoiceExecute {
			contents := make([]string, 0, len(results))
			for _, message := range results {
				contents = append(contents, message.Content)
			}
			final = schema.ChatMessage{Role: schema.RoleAssistant, Content: strings.Join(contents, "\n")}
			finish = schema.FinishReasonToolCalls
			break
		}

		// Stop when the maximum number of rounds is reached
		if round+1 >= m.maxRounds {
			m.logger.Warn("maximum tool rounds reached", "rounds", m.maxRounds)
			finish = schema.FinishReasonToolCalls
			break
		}
	}

	// Report every tool call performed with the final message
	final.Role = schema.RoleAssistant
	final.ToolCalls = performed
	if finish == "" {
		finish = schema.FinishReasonStop
	}

	return &schema.ChatResponse{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []schema.Choice{{
			Index:        0,
			Message:      final,
			FinishReason: finish,
			ToolMessages: toolMessages,
		}},
		Usage: &usage,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// allowlist resolves tool names into formatted tools. Every name must exist.
func (m *Manager) allowlist(names []string) ([]schema.FormattedTool, allowlist, error) {
	if len(names) == 0 {
		return nil, nil, nil
	}
	tools := make([]schema.FormattedTool, 0, len(names))
	permitted := make(allowlist, len(names))
	for _, name := range names {
		tk, t, err := m.lookup(name)
		if err != nil {
			return nil, nil, err
		}
		def, err := tk.Define(t)
		if err != nil {
			return nil, nil, err
		}
		formatted := def.Format()
		if _, exists := permitted[formatted.Function.Name]; exists {
			continue
		}
		permitted[formatted.Function.Name] = allowed{toolkit: tk, tool: t, name: def.FullyQualifiedName}
		tools = append(tools, formatted)
	}
	return tools, permitted, nil
}

// runToolCalls executes the tool calls in parallel and returns one tool
// message per call, in call order. Tool failures are returned as message
// content rather than errors.
func (m *Manager) runToolCalls(ctx context.Context, calls []schema.ToolCall, permitted allowlist, user string) ([]schema.ChatMessage, error) {
	results := make([]schema.ChatMessage, len(calls))
	wg, ctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		wg.Go(func() error {
			results[i] = schema.NewToolMessage(call, m.runToolCall(ctx, call, permitted, user))
			return ctx.Err()
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runToolCall returns the content of the tool message for a single call
func (m *Manager) runToolCall(ctx context.Context, call schema.ToolCall, permitted allowlist, user string) string {
	target, exists := permitted[call.Function.Name]
	if !exists {
		m.logger.Warn("tool not permitted", "tool", call.Function.Name)
		return toolContent(nil, arcade.ErrBadParameter.Withf("tool %q is not permitted", call.Function.Name))
	}

	var input map[string]any
	if err := call.Decode(&input); err != nil {
		return toolContent(nil, arcade.ErrBadParameter.Withf("invalid arguments for %q: %v", target.name, err))
	}

	response := m.execute(ctx, target.toolkit, target.tool, input, user)
	if response.Output.Error != nil {
		return toolContent(response.Output.Error, nil)
	}
	return toolContent(response.Output.Value, nil)
}

// qualify returns the calls with the qualified tool names
func (a allowlist) qualify(calls []schema.ToolCall) []schema.ToolCall {
	result := make([]schema.ToolCall, 0, len(calls))
	for _, call := range calls {
		if target, exists := a[call.Function.Name]; exists {
			call.Function.Name = target.name
		}
		if call.Type == "" {
			call.Type = schema.ToolTypeFunction
		}
		result = append(result, call)
	}
	return result
}

// toolContent renders a tool value or error as message content. Strings are
// returned verbatim, other values as JSON.
func toolContent(value any, err error) string {
	if err != nil {
		value = tool.Output(err)
	}
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
