// Package demo runs scripted conversations against the tool-calling service:
// a SQL analyst chat, a document parsing chat, and a flow in which a plain
// model authors SQL which is then executed as a tool.
package demo

import (
	"context"
	"io"

	// Packages
	log "github.com/charmbracelet/log"
	arcade "github.com/mutablelogic/go-arcade"
	model "github.com/mutablelogic/go-arcade/pkg/model"
	opt "github.com/mutablelogic/go-arcade/pkg/opt"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	sqltool "github.com/mutablelogic/go-arcade/pkg/sqltool"
	ui "github.com/mutablelogic/go-arcade/pkg/ui"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolService is the part of the tool-calling service API used by the demos.
// It is implemented by *httpclient.Client.
type ToolService interface {
	ListFormattedTools(ctx context.Context, opts ...opt.Opt) (*schema.ListFormattedToolsResponse, error)
	ChatCompletion(ctx context.Context, req schema.ChatRequest) (*schema.ChatResponse, error)
	ExecuteTool(ctx context.Context, req schema.ExecuteToolRequest) (*schema.ExecuteToolResponse, error)
}

type Demo struct {
	service   ToolService
	completer model.Completer
	out       *ui.Writer
	logger    *log.Logger
	user      string
	model     string
	connStr   string
	dialect   string
	schema    string
	document  string
	questions []string
}

// Opt is a functional option for configuring the demos
type Opt func(*Demo) error

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultModel    = "gpt-4o"
	DefaultSchema   = sqltool.DefaultSchema
	DefaultDialect  = "POSTGRES"
	DefaultDocument = "https://www.adobe.com/be_en/active-use/pdf/Alice_in_Wonderland.pdf"

	// Number of characters of parsed document text to print
	previewLength = 5000
)

var (
	DefaultQuestions = []string{
		"Get the first 10 users's IDs and Names",
		"Who has sent the most chat messages?",
	}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns the demos, which call the service and write to out
func New(service ToolService, out *ui.Writer, opts ...Opt) (*Demo, error) {
	if service == nil {
		return nil, arcade.ErrBadParameter.With("tool service is required")
	}
	if out == nil {
		return nil, arcade.ErrBadParameter.With("writer is required")
	}
	d := &Demo{
		service:   service,
		out:       out,
		model:     DefaultModel,
		schema:    DefaultSchema,
		dialect:   DefaultDialect,
		document:  DefaultDocument,
		questions: DefaultQuestions,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	return d, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithCompleter sets the plain chat model used to author SQL statements
func WithCompleter(completer model.Completer) Opt {
	return func(d *Demo) error {
		d.completer = completer
		return nil
	}
}

func WithLogger(logger *log.Logger) Opt {
	return func(d *Demo) error {
		d.logger = logger
		return nil
	}
}

// WithUser sets the user identifier sent with every request
func WithUser(user string) Opt {
	return func(d *Demo) error {
		d.user = user
		return nil
	}
}

func WithModel(model string) Opt {
	return func(d *Demo) error {
		if model == "" {
			return arcade.ErrBadParameter.With("model is required")
		}
		d.model = model
		return nil
	}
}

// WithConnectionString sets the database connection string quoted in the
// analyst prompt. The dialect becomes the text before the first colon.
func WithConnectionString(connStr string) Opt {
	return func(d *Demo) error {
		d.connStr = connStr
		if dialect := sqltool.Dialect(connStr); dialect != "" {
			d.dialect = dialect
		}
		return nil
	}
}

// WithDialect overrides the SQL dialect named in prompts
func WithDialect(dialect string) Opt {
	return func(d *Demo) error {
		if dialect != "" {
			d.dialect = dialect
		}
		return nil
	}
}

// WithSchema sets the database schema which tools are run against
func WithSchema(schema string) Opt {
	return func(d *Demo) error {
		if schema == "" {
			return arcade.ErrBadParameter.With("schema is required")
		}
		d.schema = schema
		return nil
	}
}

// WithDocument sets the document URL or path to parse
func WithDocument(document string) Opt {
	return func(d *Demo) error {
		if document == "" {
			return arcade.ErrBadParameter.With("document is required")
		}
		d.document = document
		return nil
	}
}

// WithQuestions sets the questions the SQL author answers
func WithQuestions(questions ...string) Opt {
	return func(d *Demo) error {
		if len(questions) > 0 {
			d.questions = questions
		}
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// listTools prints the tools of a toolkit in the openai format
func (d *Demo) listTools(ctx context.Context, toolkit string) error {
	d.logger.Debug("listing tools", "toolkit", toolkit)
	resp, err := d.service.ListFormattedTools(ctx, opt.SetString(opt.ToolkitKey, toolkit), opt.SetString(opt.FormatKey, schema.FormatOpenAI))
	if err != nil {
		return err
	}
	PrintTools(d.out, resp.Items)
	return nil
}

// chat asks a question of the service with a system prompt, permitting the
// given tools, and displays the response
func (d *Demo) chat(ctx context.Context, system, question string, tools ...string) (*schema.ChatResponse, error) {
	d.logger.Debug("chat completion", "model", d.model, "tools", tools)
	resp, err := d.service.ChatCompletion(ctx, schema.ChatRequest{
		Messages: []schema.ChatMessage{
			schema.NewSystemMessage(system),
			schema.NewUserMessage(question),
		},
		Model:      d.model,
		User:       d.user,
		Tools:      tools,
		ToolChoice: schema.ToolChoiceGenerate,
	})
	if err != nil {
		return nil, err
	}
	DisplayResponse(d.out, resp)
	return resp, nil
}

// execute runs a tool directly, returning an error if the tool failed
func (d *Demo) execute(ctx context.Context, name string, input map[string]any) (*schema.ExecuteToolResponse, error) {
	d.logger.Debug("execute tool", "name", name, "input", input)
	resp, err := d.service.ExecuteTool(ctx, schema.ExecuteToolRequest{
		ToolName: name,
		UserID:   d.user,
		Input:    input,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success && resp.Output != nil && resp.Output.Error != nil {
		d.logger.Warn("tool failed", "name", name, "error", resp.Output.Error.Message)
	}
	return resp, nil
}
