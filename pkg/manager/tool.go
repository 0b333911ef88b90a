package manager

import (
	"context"
	"sort"
	"strings"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
	ident "github.com/mutablelogic/go-arcade/pkg/types"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns paginated tool definitions, sorted by qualified name and
// optionally filtered by toolkit
func (m *Manager) ListTools(ctx context.Context, req schema.ListToolsRequest) (result *schema.ListToolsResponse, err error) {
	_, endSpan := otel.StartSpan(m.tracer, ctx, "ListTools",
		attribute.String("toolkit", req.Toolkit),
	)
	defer func() { endSpan(err) }()

	all, err := m.definitions(req.Toolkit)
	if err != nil {
		return nil, err
	}

	// Paginate
	start, end := paginate(uint(len(all)), req.Offset, req.Limit)
	return &schema.ListToolsResponse{
		Items:      all[start:end],
		TotalCount: uint(len(all)),
		Offset:     req.Offset,
		Limit:      req.Limit,
		PageCount:  end - start,
	}, nil
}

// ListFormattedTools returns paginated tool definitions in a model format.
// Only the openai format is supported, which is also the default.
func (m *Manager) ListFormattedTools(ctx context.Context, req schema.ListFormattedToolsRequest) (result *schema.ListFormattedToolsResponse, err error) {
	_, endSpan := otel.StartSpan(m.tracer, ctx, "ListFormattedTools",
		attribute.String("toolkit", req.Toolkit),
		attribute.String("format", req.Format),
	)
	defer func() { endSpan(err) }()

	if req.Format != "" && !strings.EqualFold(req.Format, schema.FormatOpenAI) {
		return nil, arcade.ErrNotImplemented.Withf("tool format %q", req.Format)
	}

	all, err := m.definitions(req.Toolkit)
	if err != nil {
		return nil, err
	}

	// Paginate and format
	start, end := paginate(uint(len(all)), req.Offset, req.Limit)
	items := make([]schema.FormattedTool, 0, end-start)
	for _, def := range all[start:end] {
		items = append(items, def.Format())
	}
	return &schema.ListFormattedToolsResponse{
		Items:      items,
		TotalCount: uint(len(all)),
		Offset:     req.Offset,
		Limit:      req.Limit,
		PageCount:  end - start,
	}, nil
}

// GetTool returns the definition of a tool by qualified or formatted name
func (m *Manager) GetTool(_ context.Context, name string) (*schema.ToolDefinition, error) {
	tk, t, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	def, err := tk.Define(t)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// definitions returns the tool definitions of one toolkit, or all toolkits
// when the name is empty
func (m *Manager) definitions(toolkit string) ([]schema.ToolDefinition, error) {
	var toolkits []*tool.Toolkit
	if toolkit != "" {
		tk := m.toolkit(toolkit)
		if tk == nil {
			return nil, arcade.ErrNotFound.Withf("toolkit %q", toolkit)
		}
		toolkits = append(toolkits, tk)
	} else {
		for _, tk := range m.toolkits {
			toolkits = append(toolkits, tk)
		}
	}

	result := []schema.ToolDefinition{}
	for _, tk := range toolkits {
		for _, t := range tk.Tools() {
			def, err := tk.Define(t)
			if err != nil {
				return nil, err
			}
			result = append(result, def)
		}
	}

	// Sort by qualified name for stable ordering
	sort.Slice(result, func(i, j int) bool {
		return result[i].FullyQualifiedName < result[j].FullyQualifiedName
	})
	return result, nil
}

// lookup returns a tool by qualified name (Sql.ExecuteQuery) or formatted
// name (Sql_ExecuteQuery)
func (m *Manager) lookup(name string) (*tool.Toolkit, tool.Tool, error) {
	if strings.Contains(name, schema.QualifiedSeparator) && !ident.IsQualifiedName(name) {
		return nil, nil, arcade.ErrBadParameter.Withf("invalid tool name %q", name)
	}
	if toolkit, _ := schema.SplitName(name); toolkit != "" {
		if tk := m.toolkit(toolkit); tk != nil {
			if t := tk.Lookup(name); t != nil {
				return tk, t, nil
			}
		}
	} else {
		for _, tk := range m.toolkits {
			for _, t := range tk.Tools() {
				if schema.FormattedName(schema.QualifiedName(tk.Name(), t.Name())) == name {
					return tk, t, nil
				}
			}
		}
	}
	return nil, nil, arcade.ErrNotFound.Withf("tool %q", name)
}

// paginate returns the bounds of a page
func paginate(total, offset uint, limit *uint) (uint, uint) {
	start := min(offset, total)
	if limit == nil || *limit >= total-start {
		return start, total
	}
	return start, start + *limit
}
