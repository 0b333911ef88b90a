package tool

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	arcade "github.com/mutablelogic/go-arcade"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	types "github.com/mutablelogic/go-arcade/pkg/types"
	server "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema
type Tool interface {
	// Return the name of the tool, without the toolkit prefix
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Toolkit is a named collection of tools with unique names
type Toolkit struct {
	meta  schema.ToolkitMeta
	tools map[string]Tool
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given name and tools.
// Returns an error if the name, or any tool name, is invalid or duplicated.
func NewToolkit(name, description string, tools ...Tool) (*Toolkit, error) {
	if !types.IsIdentifier(name) {
		return nil, arcade.ErrBadParameter.Withf("invalid toolkit name: %q", name)
	}
	tk := &Toolkit{
		meta:  schema.ToolkitMeta{Name: name, Description: description},
		tools: make(map[string]Tool),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the toolkit name, e.g. Sql
func (tk *Toolkit) Name() string {
	return tk.meta.Name
}

// Meta returns the toolkit metadata
func (tk *Toolkit) Meta() schema.ToolkitMeta {
	return tk.meta
}

// SetVersion sets the version reported in tool definitions
func (tk *Toolkit) SetVersion(v string) {
	tk.meta.Version = v
}

// Tools returns all tools in the toolkit, sorted by name
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, 0, len(tk.tools))
	for _, t := range tk.tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Register adds one or more tools to the toolkit.
// Returns an error if any tool has an invalid or duplicate name.
func (tk *Toolkit) Register(tools ...Tool) error {
	for _, t := range tools {
		if t == nil {
			return arcade.ErrBadParameter.With("tool cannot be nil")
		}
		name := t.Name()
		if !types.IsIdentifier(name) {
			return arcade.ErrBadParameter.Withf("invalid tool name: %q", name)
		}
		if _, exists := tk.tools[name]; exists {
			return arcade.ErrConflict.Withf("duplicate tool name: %q", name)
		}
		tk.tools[name] = t
	}
	return nil
}

// Lookup returns a tool by bare or qualified name, or nil if not found.
// The toolkit prefix of a qualified name is matched case-insensitively.
func (tk *Toolkit) Lookup(name string) Tool {
	toolkit, bare := schema.SplitName(name)
	if toolkit != "" && !strings.EqualFold(toolkit, tk.meta.Name) {
		return nil
	}
	return tk.tools[bare]
}

// Define returns the definition of a tool in this toolkit
func (tk *Toolkit) Define(t Tool) (schema.ToolDefinition, error) {
	input, err := t.Schema()
	if err != nil {
		return schema.ToolDefinition{}, arcade.ErrInternalServerError.Withf("schema generation failed for %q: %v", t.Name(), err)
	}
	return schema.ToolDefinition{
		FullyQualifiedName: schema.QualifiedName(tk.meta.Name, t.Name()),
		Name:               t.Name(),
		Description:        t.Description(),
		Toolkit:            tk.Meta(),
		Input:              input,
	}, nil
}

// Run executes a tool by name with the given input.
// The input should be json.RawMessage, []byte, a map or nil.
// Returns an error if the tool is not found, the input does not match the schema,
// or the tool execution fails.
func (tk *Toolkit) Run(ctx context.Context, name string, input any) (any, error) {
	// Lookup the tool
	tool := tk.Lookup(name)
	if tool == nil {
		return nil, arcade.ErrNotFound.Withf("tool not found: %q", name)
	}

	// Convert input to json.RawMessage
	var rawInput json.RawMessage
	if input != nil {
		switch v := input.(type) {
		case json.RawMessage:
			rawInput = v
		case []byte:
			rawInput = json.RawMessage(v)
		default:
			data, err := json.Marshal(input)
			if err != nil {
				return nil, arcade.ErrBadParameter.Withf("failed to marshal input: %v", err)
			}
			rawInput = json.RawMessage(data)
		}
	}

	// Validate input against schema if provided
	if err := validate(tool, rawInput); err != nil {
		return nil, err
	}

	// Run the tool with raw JSON
	return tool.Run(ctx, rawInput)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func validate(tool Tool, input json.RawMessage) error {
	s, err := tool.Schema()
	if err != nil {
		return arcade.ErrBadParameter.Withf("schema generation failed: %v", err)
	} else if s == nil {
		return nil
	}

	// An absent input validates as an empty object
	mapInput := map[string]any{}
	if len(input) > 0 && string(input) != "null" {
		if err := json.Unmarshal(input, &mapInput); err != nil {
			return arcade.ErrBadParameter.Withf("failed to unmarshal JSON input: %v", err)
		}
	}

	resolved, err := s.Resolve(nil)
	if err != nil {
		return arcade.ErrBadParameter.Withf("schema resolution failed: %v", err)
	}
	if err := resolved.Validate(mapInput); err != nil {
		return arcade.ErrBadParameter.Withf("input validation failed: %v", err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	names := make([]string, 0, len(tk.tools))
	for _, t := range tk.Tools() {
		names = append(names, schema.QualifiedName(tk.meta.Name, t.Name()))
	}
	return server.Stringify(names)
}
