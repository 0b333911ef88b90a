package schema

import (
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// FormatOpenAI is the only supported tool format for formatted listings
	FormatOpenAI = "openai"

	// ToolTypeFunction is the type of every formatted tool and tool call
	ToolTypeFunction = "function"

	// QualifiedSeparator separates the toolkit and tool name, e.g. Sql.ExecuteQuery
	QualifiedSeparator = "."

	// formattedSeparator replaces QualifiedSeparator in formatted names, since
	// function names may not contain a period
	formattedSeparator = "_"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolkitMeta describes the toolkit a tool belongs to
type ToolkitMeta struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// ToolDefinition describes a tool hosted by the service
type ToolDefinition struct {
	FullyQualifiedName string             `json:"fully_qualified_name"`
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	Toolkit            ToolkitMeta        `json:"toolkit"`
	Input              *jsonschema.Schema `json:"input,omitempty"`
}

// FormattedTool is a tool definition in the OpenAI function-calling format
type FormattedTool struct {
	Type     string            `json:"type"`
	Function FormattedFunction `json:"function"`
}

// FormattedFunction is the function part of a FormattedTool
type FormattedFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// ListToolsRequest represents a request to list tools
type ListToolsRequest struct {
	Toolkit string `json:"toolkit,omitempty" help:"Filter by toolkit name" optional:""`
	Limit   *uint  `json:"limit,omitempty" help:"Maximum number of tools to return"`
	Offset  uint   `json:"offset,omitempty" help:"Offset for pagination"`
}

// ListFormattedToolsRequest represents a request to list tools in a given format
type ListFormattedToolsRequest struct {
	ListToolsRequest
	Format string `json:"format,omitempty" help:"Tool format" enum:"openai," default:""`
}

// ListToolsResponse represents a page of tool definitions
type ListToolsResponse struct {
	Items      []ToolDefinition `json:"items"`
	TotalCount uint             `json:"total_count"`
	Offset     uint             `json:"offset,omitzero"`
	Limit      *uint            `json:"limit,omitzero"`
	PageCount  uint             `json:"page_count"`
}

// ListFormattedToolsResponse represents a page of formatted tools
type ListFormattedToolsResponse struct {
	Items      []FormattedTool `json:"items"`
	TotalCount uint            `json:"total_count"`
	Offset     uint            `json:"offset,omitzero"`
	Limit      *uint           `json:"limit,omitzero"`
	PageCount  uint            `json:"page_count"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// QualifiedName returns the toolkit-qualified name of a tool, e.g. Sql.DiscoverTables
func QualifiedName(toolkit, name string) string {
	return toolkit + QualifiedSeparator + name
}

// SplitName splits a qualified name into toolkit and tool name. When the name
// is not qualified the toolkit is empty.
func SplitName(name string) (string, string) {
	if toolkit, tool, ok := strings.Cut(name, QualifiedSeparator); ok {
		return toolkit, tool
	}
	return "", name
}

// FormattedName returns the name of a qualified tool as used in formatted
// listings and model tool calls, e.g. Sql_DiscoverTables
func FormattedName(name string) string {
	return strings.ReplaceAll(name, QualifiedSeparator, formattedSeparator)
}

// Format returns the tool definition in OpenAI function-calling format
func (t ToolDefinition) Format() FormattedTool {
	return FormattedTool{
		Type: ToolTypeFunction,
		Function: FormattedFunction{
			Name:        FormattedName(t.FullyQualifiedName),
			Description: t.Description,
			Parameters:  t.Input,
		},
	}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t ToolDefinition) String() string {
	return types.Stringify(t)
}

func (t FormattedTool) String() string {
	return types.Stringify(t)
}
