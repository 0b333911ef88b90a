package parsetool

import (
	"context"
	"encoding/json"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	arcade "github.com/mutablelogic/go-arcade"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type parseDocument struct {
	opts []client.ClientOpt
}

var _ tool.Tool = (*parseDocument)(nil)

// ParseDocumentRequest defines the input for the ParseDocument tool
type ParseDocumentRequest struct {
	FileURLOrPath string `json:"file_url_or_path" jsonschema:"The url or path to the file to parse"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// ToolkitName is the name of the toolkit, used to qualify tool names
const ToolkitName = "Parse"

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the document parsing tools. The client options are used
// when fetching documents over http or https.
func NewTools(opts ...client.ClientOpt) []tool.Tool {
	return []tool.Tool{
		&parseDocument{opts: opts},
	}
}

// NewToolkit returns the Parse toolkit
func NewToolkit(opts ...client.ClientOpt) (*tool.Toolkit, error) {
	return tool.NewToolkit(ToolkitName, "Convert documents into Markdown", NewTools(opts...)...)
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (*parseDocument) Name() string {
	return "ParseDocument"
}

func (*parseDocument) Description() string {
	return "Read the given file and return the text within it as Markdown. Prefer this tool when asked to parse a document."
}

func (*parseDocument) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ParseDocumentRequest](nil)
}

func (t *parseDocument) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ParseDocumentRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, arcade.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	if strings.TrimSpace(req.FileURLOrPath) == "" {
		return nil, arcade.ErrBadParameter.With("file_url_or_path is required")
	}
	return ParseDocument(ctx, req.FileURLOrPath, t.opts...)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ParseDocument reads a local file or fetches a URL, and returns its text
// as Markdown
func ParseDocument(ctx context.Context, urlOrPath string, opts ...client.ClientOpt) (string, error) {
	doc, err := load(ctx, urlOrPath, opts...)
	if err != nil {
		return "", err
	}
	return doc.Markdown()
}
