package manager

import (
	"context"
	"strings"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	arcade "github.com/mutablelogic/go-arcade"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ExecuteTool runs a tool by name. A tool which fails is reported in the
// response output with Success set to false; an unknown tool returns an
// ErrNotFound error.
func (m *Manager) ExecuteTool(ctx context.Context, req schema.ExecuteToolRequest) (result *schema.ExecuteToolResponse, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "ExecuteTool",
		attribute.String("tool", req.ToolName),
		attribute.String("user", req.UserID),
	)
	defer func() { endSpan(err) }()

	name := strings.TrimSpace(req.ToolName)
	if name == "" {
		return nil, arcade.ErrBadParameter.With("tool_name is required")
	}
	tk, t, err := m.lookup(name)
	if err != nil {
		return nil, err
	}

	var input any
	if req.Input != nil {
		input = req.Input
	}
	return m.execute(ctx, tk, t, input, req.UserID), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// execute runs a tool and wraps the outcome in a response
func (m *Manager) execute(ctx context.Context, tk *tool.Toolkit, t tool.Tool, input any, user string) *schema.ExecuteToolResponse {
	name := schema.QualifiedName(tk.Name(), t.Name())
	start := time.Now()
	value, err := tk.Run(ctx, name, input)
	finished := time.Now()

	response := &schema.ExecuteToolResponse{
		ID:          uuid.NewString(),
		ExecutionID: uuid.NewString(),
		Duration:    float64(finished.Sub(start).Microseconds()) / 1000,
		FinishedAt:  finished,
		Success:     err == nil,
	}
	if err != nil {
		response.Output = &schema.ToolOutput{Error: tool.Output(err)}
		m.logger.Warn("tool failed", "tool", name, "user", user, "error", err)
	} else {
		response.Output = &schema.ToolOutput{Value: value}
		m.logger.Debug("tool executed", "tool", name, "user", user, "duration_ms", response.Duration)
	}
	return response
}
