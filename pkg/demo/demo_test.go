package demo_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	demo "github.com/mutablelogic/go-arcade/pkg/demo"
	opt "github.com/mutablelogic/go-arcade/pkg/opt"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	ui "github.com/mutablelogic/go-arcade/pkg/ui"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// MOCKS

type mockService struct {
	tools    []schema.FormattedTool
	content  func(req schema.ChatRequest) *schema.ChatResponse
	listErr  error
	toolkits []string
	chats    []schema.ChatRequest
	executes []schema.ExecuteToolRequest
}

func (s *mockService) ListFormattedTools(_ context.Context, opts ...opt.Opt) (*schema.ListFormattedToolsResponse, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.GetString(opt.FormatKey) != schema.FormatOpenAI {
		return nil, arcade.ErrNotImplemented.With(o.GetString(opt.FormatKey))
	}
	s.toolkits = append(s.toolkits, o.GetString(opt.ToolkitKey))
	return &schema.ListFormattedToolsResponse{Items: s.tools, TotalCount: uint(len(s.tools))}, nil
}

func (s *mockService) ChatCompletion(_ context.Context, req schema.ChatRequest) (*schema.ChatResponse, error) {
	s.chats = append(s.chats, req)
	if s.content == nil {
		return &schema.ChatResponse{}, nil
	}
	return s.content(req), nil
}

func (s *mockService) ExecuteTool(_ context.Context, req schema.ExecuteToolRequest) (*schema.ExecuteToolResponse, error) {
	s.executes = append(s.executes, req)
	var value any
	switch req.ToolName {
	case "Sql.DiscoverTables":
		value = []any{"messages", "users"}
	case "Sql.GetTableSchema":
		value = []any{"id: int", req.Input["table_name"].(string) + "_name: str"}
	case "Sql.ExecuteQuery":
		if req.Input["query"] == "" {
			return &schema.ExecuteToolResponse{Output: &schema.ToolOutput{Error: &schema.ToolOutputError{Message: "Query failed: empty"}}}, nil
		}
		value = []any{"(1, 'alice')", "(2, 'bob')"}
	}
	return &schema.ExecuteToolResponse{Success: true, Output: &schema.ToolOutput{Value: value}}, nil
}

type mockCompleter struct {
	content  string
	requests []schema.CompletionRequest
}

func (c *mockCompleter) Complete(_ context.Context, req schema.CompletionRequest) (*schema.Completion, error) {
	c.requests = append(c.requests, req)
	return &schema.Completion{Message: schema.ChatMessage{Role: schema.RoleAssistant, Content: c.content}}, nil
}

func formattedTool(name, description string) schema.FormattedTool {
	return schema.FormattedTool{Type: "function", Function: schema.FormattedFunction{Name: name, Description: description}}
}

func response(content string, calls ...schema.ToolCall) *schema.ChatResponse {
	return &schema.ChatResponse{Choices: []schema.Choice{{
		Message: schema.ChatMessage{Role: schema.RoleAssistant, Content: content, ToolCalls: calls},
	}}}
}

func newDemo(t *testing.T, service demo.ToolService, opts ...demo.Opt) (*demo.Demo, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	d, err := demo.New(service, ui.NewWriter(&buf), opts...)
	require.NoError(t, err)
	return d, &buf
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func TestPrintTools(t *testing.T) {
	var buf bytes.Buffer
	demo.PrintTools(ui.NewWriter(&buf), []schema.FormattedTool{
		formattedTool("Sql_DiscoverTables", "Discover all the tables in the database"),
		formattedTool("Sql_ExecuteQuery", "Execute a query"),
	})
	assert.Equal(t, "⚙️ Found the following tools:\nSql_DiscoverTables: Discover all the tables in the database\nSql_ExecuteQuery: Execute a query\n", buf.String())
}

func TestDisplayResponse(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	demo.DisplayResponse(ui.NewWriter(&buf), response("There are two tables", schema.ToolCall{
		ID: "call_1", Type: "function", Function: schema.ToolCallFunction{Name: "Sql.DiscoverTables", Arguments: `{"schema_name":"public"}`},
	}))
	assert.Equal("--- response ---\nThere are two tables\n--- tool calls ---\nSql.DiscoverTables: {\"schema_name\":\"public\"}\n---\n", buf.String())

	// Absent fields are empty
	buf.Reset()
	demo.DisplayResponse(ui.NewWriter(&buf), nil)
	assert.Equal("--- response ---\n\n--- tool calls ---\n---\n", buf.String())
}

func TestNew_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := demo.New(nil, ui.NewWriter(&bytes.Buffer{}))
	assert.ErrorIs(err, arcade.ErrBadParameter)

	_, err = demo.New(&mockService{}, nil)
	assert.ErrorIs(err, arcade.ErrBadParameter)

	_, err = demo.New(&mockService{}, ui.NewWriter(&bytes.Buffer{}), demo.WithSchema(""))
	assert.ErrorIs(err, arcade.ErrBadParameter)
}

func TestSqlChat(t *testing.T) {
	assert := assert.New(t)
	service := &mockService{
		tools: []schema.FormattedTool{formattedTool("Sql_DiscoverTables", "Discover tables")},
		content: func(req schema.ChatRequest) *schema.ChatResponse {
			question := req.Messages[1].Content
			switch {
			case strings.Contains(question, "`users`"):
				return response("- id: int\n- name: str")
			case strings.Contains(question, "`messages`"):
				return response("- id: int\n- user_id: int")
			}
			return response("answer to: " + question)
		},
	}
	d, buf := newDemo(t, service, demo.WithConnectionString("postgresql://localhost/db"), demo.WithUser("user@example.com"))

	require.NoError(t, d.SqlChat(context.TODO()))
	output := buf.String()
	assert.Contains(output, "Sql_DiscoverTables: Discover tables")
	assert.Contains(output, "⚙️ testing `Sql.ExecuteQuery`")
	assert.Contains(output, "answer to: Discover all the tables in the database")
	assert.Equal([]string{"sql"}, service.toolkits)

	if assert.Len(service.chats, 6) {
		first := service.chats[0]
		assert.Equal(demo.DefaultModel, first.Model)
		assert.Equal("user@example.com", first.User)
		assert.Equal(schema.ToolChoiceGenerate, first.ToolChoice)
		assert.Equal([]string{"Sql.DiscoverTables"}, first.Tools)
		assert.Contains(first.Messages[0].Content, `"postgresql://localhost/db"`)
		assert.Contains(first.Messages[0].Content, `The SQL dialect is "postgresql"`)

		assert.Equal([]string{"Sql.GetTableSchema"}, service.chats[1].Tools)
		assert.Equal([]string{"Sql.ExecuteQuery"}, service.chats[5].Tools)
		assert.Contains(service.chats[3].Messages[1].Content, "- id: int\n- name: str")
		assert.Contains(service.chats[5].Messages[1].Content, "- user_id: int")
	}
}

func TestSqlChat_Error(t *testing.T) {
	service := &mockService{listErr: errors.New("connection refused")}
	d, _ := newDemo(t, service)

	assert.EqualError(t, d.SqlChat(context.TODO()), "connection refused")
	assert.Empty(t, service.chats)
}

func TestParseChat(t *testing.T) {
	assert := assert.New(t)
	text := strings.Repeat("a", 4990) + strings.Repeat("b", 100)
	service := &mockService{
		tools: []schema.FormattedTool{formattedTool("Parse_ParseDocument", "Parse a document")},
		content: func(req schema.ChatRequest) *schema.ChatResponse {
			resp := response("Parsed the document")
			resp.Choices[0].ToolMessages = []schema.ChatMessage{{Role: schema.RoleTool, ToolCallID: "call_1", Content: text}}
			return resp
		},
	}
	d, buf := newDemo(t, service, demo.WithDocument("https://example.com/alice.pdf"))

	require.NoError(t, d.ParseChat(context.TODO()))
	output := buf.String()
	assert.Contains(output, "Parse_ParseDocument: Parse a document")
	assert.Contains(output, `[❓] Asking: Get the markdown content from the document located at "https://example.com/alice.pdf"?`)
	assert.Contains(output, "Parsed the document")
	assert.Equal([]string{"parse"}, service.toolkits)
	assert.Contains(output, "--- text ---\n"+strings.Repeat("a", 4990)+strings.Repeat("b", 10)+"...\n---\n")
	if assert.Len(service.chats, 1) {
		assert.Equal([]string{"Parse.ParseDocument"}, service.chats[0].Tools)
	}
}

func TestSqlAuthor(t *testing.T) {
	assert := assert.New(t)
	service := &mockService{tools: []schema.FormattedTool{formattedTool("Sql_ExecuteQuery", "Execute a query")}}
	completer := &mockCompleter{content: "  SELECT id, name FROM users LIMIT 10  \n"}
	d, buf := newDemo(t, service, demo.WithCompleter(completer), demo.WithQuestions("Who are the users?"))

	require.NoError(t, d.SqlAuthor(context.TODO()))
	output := buf.String()
	assert.Contains(output, "[🔍] Discovered the following tables: messages, users")
	assert.Contains(output, "[📜] Schema for users: id: int,users_name: str")
	assert.Contains(output, "[❓] Asking: Who are the users?")
	assert.Contains(output, "[📝] SQL statement: SELECT id, name FROM users LIMIT 10\n")
	assert.Contains(output, "(1, 'alice')\n(2, 'bob')\n")

	if assert.Len(service.executes, 4) {
		assert.Equal("public", service.executes[0].Input["schema_name"])
		assert.Equal("messages", service.executes[1].Input["table_name"])
		assert.Equal("Sql.ExecuteQuery", service.executes[3].ToolName)
		assert.Equal("SELECT id, name FROM users LIMIT 10", service.executes[3].Input["query"])
	}
	if assert.Len(completer.requests, 1) {
		messages := completer.requests[0].Messages
		assert.Contains(messages[0].Content, `The SQL dialect is "POSTGRES"`)
		assert.Contains(messages[1].Content, `"users": [`)
		assert.Empty(completer.requests[0].Tools)
	}
}

func TestSqlAuthor_QueryFailed(t *testing.T) {
	service := &mockService{}
	d, buf := newDemo(t, service, demo.WithCompleter(&mockCompleter{}), demo.WithQuestions("?"))

	require.NoError(t, d.SqlAuthor(context.TODO()))
	assert.Contains(t, buf.String(), "Query failed: empty\n")
}

func TestSqlAuthor_NoCompleter(t *testing.T) {
	d, _ := newDemo(t, &mockService{})
	assert.ErrorIs(t, d.SqlAuthor(context.TODO()), arcade.ErrNotImplemented)
}
