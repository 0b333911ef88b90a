package manager

import (
	"context"
	"testing"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func toolCall(id, name, arguments string) schema.ToolCall {
	return schema.ToolCall{ID: id, Type: "function", Function: schema.ToolCallFunction{Name: name, Arguments: arguments}}
}

func assistant(content string, calls ...schema.ToolCall) schema.Completion {
	return schema.Completion{
		Message: schema.ChatMessage{Role: schema.RoleAssistant, Content: content, ToolCalls: calls},
		Usage:   schema.Usage{PromptTokens: 10, CompletionTokens: 2, TotalTokens: 12},
	}
}

var chatMessages = []schema.ChatMessage{
	schema.NewSystemMessage("You are an expert SQL analyst."),
	schema.NewUserMessage("What tables are there?"),
}

// Test Chat without tool calls returns the model content
func Test_chat_001(t *testing.T) {
	assert := assert.New(t)
	completer := &mockCompleter{responses: []schema.Completion{assistant("Hello")}}
	m := newTestManager(t, WithCompleter(completer), WithDefaultModel("gpt-test"))

	resp, err := m.Chat(context.TODO(), schema.ChatRequest{Messages: chatMessages})
	assert.NoError(err)
	assert.Equal("Hello", resp.FirstContent())
	assert.Empty(resp.FirstToolCalls())
	assert.Equal("gpt-test", resp.Model)
	assert.Equal(schema.FinishReasonStop, resp.Choices[0].FinishReason)
	if assert.Len(completer.requests, 1) {
		assert.Empty(completer.requests[0].Tools)
		assert.Equal("gpt-test", completer.requests[0].Model)
	}
}

// Test Chat with tool choice generate executes tools and asks again
func Test_chat_002(t *testing.T) {
	assert := assert.New(t)
	completer := &mockCompleter{responses: []schema.Completion{
		assistant("", toolCall("call_1", "Sql_DiscoverTables", `{}`)),
		assistant("There are two tables: messages and users."),
	}}
	m := newTestManager(t, WithCompleter(completer))

	resp, err := m.Chat(context.TODO(), schema.ChatRequest{
		Messages:   chatMessages,
		User:       "user@example.com",
		Tools:      []string{"Sql.DiscoverTables", "Sql.ExecuteQuery"},
		ToolChoice: "generate",
	})
	assert.NoError(err)
	assert.Equal("There are two tables: messages and users.", resp.FirstContent())
	if calls := resp.FirstToolCalls(); assert.Len(calls, 1) {
		assert.Equal("Sql.DiscoverTables", calls[0].Function.Name)
		assert.Equal("{}", calls[0].Function.Arguments)
	}
	assert.Equal(`["messages","users"]`, resp.FirstToolContent())
	assert.Equal(uint64(24), resp.Usage.TotalTokens)

	// The second round carries the tool call and its result
	if assert.Len(completer.requests, 2) {
		assert.Len(completer.requests[0].Tools, 2)
		assert.Equal("user@example.com", completer.requests[0].User)
		messages := completer.requests[1].Messages
		if assert.Len(messages, 4) {
			assert.Equal(schema.RoleAssistant, messages[2].Role)
			assert.Equal(schema.RoleTool, messages[3].Role)
			assert.Equal("call_1", messages[3].ToolCallID)
		}
	}
}

// Test parallel tool calls keep their order
func Test_chat_003(t *testing.T) {
	assert := assert.New(t)
	completer := &mockCompleter{responses: []schema.Completion{
		assistant("",
			toolCall("call_1", "Parse_ParseDocument", `{"file_url_or_path":"a.pdf"}`),
			toolCall("call_2", "Sql_DiscoverTables", `{}`),
		),
		assistant("done"),
	}}
	m := newTestManager(t, WithCompleter(completer))

	resp, err := m.Chat(context.TODO(), schema.ChatRequest{
		Messages: chatMessages,
		Tools:    []string{"Parse.ParseDocument", "Sql.DiscoverTables"},
	})
	assert.NoError(err)
	if messages := resp.Choices[0].ToolMessages; assert.Len(messages, 2) {
		assert.Equal("call_1", messages[0].ToolCallID)
		assert.Equal("# Document", messages[0].Content)
		assert.Equal("call_2", messages[1].ToolCallID)
	}
	assert.Equal("# Document", resp.FirstToolContent())
}

// Test tool calls outside the allowlist are not executed
func Test_chat_004(t *testing.T) {
	assert := assert.New(t)
	completer := &mockCompleter{responses: []schema.Completion{
		assistant("", toolCall("call_1", "Sql_ExecuteQuery", `{"query":"SELECT 1"}`)),
		assistant("I cannot run queries."),
	}}
	m := newTestManager(t, WithCompleter(completer))

	resp, err := m.Chat(context.TODO(), schema.ChatRequest{
		Messages: chatMessages,
		Tools:    []string{"Sql.DiscoverTables"},
	})
	assert.NoError(err)
	assert.Equal("I cannot run queries.", resp.FirstContent())
	assert.Contains(resp.FirstToolContent(), "not permitted")
}

// Test tool choice execute returns tool output without a final generation
func Test_chat_005(t *testing.T) {
	assert := assert.New(t)
	completer := &mockCompleter{responses: []schema.Completion{
		assistant("", toolCall("call_1", "Parse_ParseDocument", `{"file_url_or_path":"a.pdf"}`)),
	}}
	m := newTestManager(t, WithCompleter(completer))

	resp, err := m.Chat(context.TODO(), schema.ChatRequest{
		Messages:   chatMessages,
		Tools:      []string{"Parse.ParseDocument"},
		ToolChoice: schema.ToolChoiceExecute,
	})
	assert.NoError(err)
	assert.Equal("# Document", resp.FirstContent())
	assert.Equal(schema.FinishReasonToolCalls, resp.Choices[0].FinishReason)
	assert.Len(completer.requests, 1)
}

// Test tool calling stops after the maximum number of rounds
func Test_chat_006(t *testing.T) {
	assert := assert.New(t)
	completer := &mockCompleter{responses: []schema.Completion{
		assistant("", toolCall("call_1", "Sql_DiscoverTables", `{}`)),
		assistant("", toolCall("call_2", "Sql_DiscoverTables", `{}`)),
		assistant("", toolCall("call_3", "Sql_DiscoverTables", `{}`)),
	}}
	m := newTestManager(t, WithCompleter(completer), WithMaxRounds(2))

	resp, err := m.Chat(context.TODO(), schema.ChatRequest{
		Messages: chatMessages,
		Tools:    []string{"Sql.DiscoverTables"},
	})
	assert.NoError(err)
	assert.Len(completer.requests, 2)
	assert.Len(resp.FirstToolCalls(), 2)
	assert.Equal(schema.FinishReasonToolCalls, resp.Choices[0].FinishReason)
}

// Test tool errors are returned to the model as content
func Test_chat_007(t *testing.T) {
	assert := assert.New(t)
	completer := &mockCompleter{responses: []schema.Completion{
		assistant("", toolCall("call_1", "Sql_ExecuteQuery", `{"query":""}`)),
		assistant("The query failed."),
	}}
	m := newTestManager(t, WithCompleter(completer))

	resp, err := m.Chat(context.TODO(), schema.ChatRequest{
		Messages: chatMessages,
		Tools:    []string{"Sql.ExecuteQuery"},
	})
	assert.NoError(err)
	assert.Contains(resp.FirstToolContent(), "Query failed: empty")
	assert.Contains(resp.FirstToolContent(), `"can_retry":true`)
}

// Test request validation
func Test_chat_008(t *testing.T) {
	assert := assert.New(t)

	m := newTestManager(t)
	_, err := m.Chat(context.TODO(), schema.ChatRequest{Messages: chatMessages})
	assert.ErrorIs(err, arcade.ErrNotImplemented)

	m = newTestManager(t, WithCompleter(&mockCompleter{}))
	_, err = m.Chat(context.TODO(), schema.ChatRequest{})
	assert.ErrorIs(err, arcade.ErrBadParameter)

	_, err = m.Chat(context.TODO(), schema.ChatRequest{Messages: chatMessages, Tools: []string{"Sql.Missing"}})
	assert.ErrorIs(err, arcade.ErrNotFound)

	_, err = m.Chat(context.TODO(), schema.ChatRequest{Messages: chatMessages, ToolChoice: "sometimes"})
	assert.ErrorIs(err, arcade.ErrBadParameter)
}

// Test tool choice none sends no tools
func Test_chat_009(t *testing.T) {
	assert := assert.New(t)
	completer := &mockCompleter{responses: []schema.Completion{assistant("No tools")}}
	m := newTestManager(t, WithCompleter(completer))

	resp, err := m.Chat(context.TODO(), schema.ChatRequest{
		Messages:   chatMessages,
		Tools:      []string{"Sql.DiscoverTables"},
		ToolChoice: schema.ToolChoiceNone,
	})
	assert.NoError(err)
	assert.Equal("No tools", resp.FirstContent())
	if assert.Len(completer.requests, 1) {
		assert.Empty(completer.requests[0].Tools)
	}
}

// Test Chat does not run tool calls from a truncated completion
func Test_chat_truncated(t *testing.T) {
	assert := assert.New(t)
	truncated := assistant("The tables are", toolCall("call_1", "Sql_DiscoverTables", `{"schema_na`))
	truncated.FinishReason = schema.FinishReasonLength
	completer := &mockCompleter{responses: []schema.Completion{truncated}}
	m := newTestManager(t, WithCompleter(completer))

	resp, err := m.Chat(context.TODO(), schema.ChatRequest{
		Messages: chatMessages,
		Tools:    []string{"Sql.DiscoverTables"},
	})
	assert.NoError(err)
	assert.Equal("The tables are", resp.FirstContent())
	assert.Empty(resp.FirstToolCalls())
	assert.Empty(resp.Choices[0].ToolMessages)
	assert.Equal(schema.FinishReasonLength, resp.Choices[0].FinishReason)
	assert.Len(completer.requests, 1)
}
