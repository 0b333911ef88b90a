package model

import (
	"context"
	"encoding/json"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	openai "github.com/openai/openai-go"
	option "github.com/openai/openai-go/option"
	param "github.com/openai/openai-go/packages/param"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// OpenAI is a Completer for the OpenAI chat completions API, or any
// compatible endpoint
type OpenAI struct {
	client openai.Client
}

var _ Completer = (*OpenAI)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// DefaultModel is used when a request does not name a model
const DefaultModel = "gpt-4o-mini"

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewOpenAI returns a completer with an API key. When baseURL is empty, the
// OpenAI endpoint is used.
func NewOpenAI(apiKey, baseURL string, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, arcade.ErrBadParameter.With("missing OpenAI API key")
	}
	defaults := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		defaults = append(defaults, option.WithBaseURL(baseURL))
	}
	return &OpenAI{
		client: openai.NewClient(append(defaults, opts...)...),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (o *OpenAI) Complete(ctx context.Context, req schema.CompletionRequest) (*schema.Completion, error) {
	params := openai.ChatCompletionNewParams{
		Model:    req.Model,
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)),
	}
	if params.Model == "" {
		params.Model = DefaultModel
	}
	if req.User != "" {
		params.User = param.NewOpt(req.User)
	}
	for _, message := range req.Messages {
		params.Messages = append(params.Messages, toOpenAIMessage(message))
	}
	for _, t := range req.Tools {
		tool, err := toOpenAITool(t)
		if err != nil {
			return nil, err
		}
		params.Tools = append(params.Tools, tool)
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	} else if len(completion.Choices) == 0 {
		return nil, arcade.ErrInternalServerError.With("model returned no completion choices")
	}

	choice := completion.Choices[0]
	return &schema.Completion{
		Message:      fromOpenAIMessage(choice.Message),
		FinishReason: choice.FinishReason,
		Usage: schema.Usage{
			PromptTokens:     uint64(completion.Usage.PromptTokens),
			CompletionTokens: uint64(completion.Usage.CompletionTokens),
			TotalTokens:      uint64(completion.Usage.TotalTokens),
		},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func toOpenAIMessage(m schema.ChatMessage) openai.ChatCompletionMessageParamUnion {
	switch m.Role {
	case schema.RoleSystem:
		return openai.SystemMessage(m.Content)
	case schema.RoleAssistant:
		msg := openai.AssistantMessage(m.Content)
		if len(m.ToolCalls) > 0 {
			calls := make([]openai.ChatCompletionMessageToolCallParam, 0, len(m.ToolCalls))
			for _, call := range m.ToolCalls {
				calls = append(calls, openai.ChatCompletionMessageToolCallParam{
					ID: call.ID,
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      call.Function.Name,
						Arguments: call.Function.Arguments,
					},
				})
			}
			msg.OfAssistant.ToolCalls = calls
		}
		return msg
	case schema.RoleTool:
		return openai.ToolMessage(m.Content, m.ToolCallID)
	default:
		msg := openai.UserMessage(m.Content)
		if m.Name != "" {
			msg.OfUser.Name = param.NewOpt(m.Name)
		}
		return msg
	}
}

func fromOpenAIMessage(m openai.ChatCompletionMessage) schema.ChatMessage {
	message := schema.ChatMessage{
		Role:    schema.RoleAssistant,
		Content: m.Content,
	}
	for _, call := range m.ToolCalls {
		message.ToolCalls = append(message.ToolCalls, schema.ToolCall{
			ID:   call.ID,
			Type: schema.ToolTypeFunction,
			Function: schema.ToolCallFunction{
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			},
		})
	}
	return message
}

// toOpenAITool converts the input schema into untyped function parameters
func toOpenAITool(t schema.FormattedTool) (openai.ChatCompletionToolParam, error) {
	parameters := openai.FunctionParameters{"type": "object", "properties": map[string]any{}}
	if t.Function.Parameters != nil {
		data, err := json.Marshal(t.Function.Parameters)
		if err != nil {
			return openai.ChatCompletionToolParam{}, arcade.ErrInternalServerError.Withf("tool %q: %v", t.Function.Name, err)
		}
		if err := json.Unmarshal(data, &parameters); err != nil {
			return openai.ChatCompletionToolParam{}, arcade.ErrInternalServerError.Withf("tool %q: %v", t.Function.Name, err)
		}
	}
	return openai.ChatCompletionToolParam{
		Type: "function",
		Function: openai.FunctionDefinitionParam{
			Name:        t.Function.Name,
			Description: param.NewOpt(t.Function.Description),
			Parameters:  parameters,
		},
	}, nil
}
