package httpclient

import (
	"context"
	"net/url"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	opt "github.com/mutablelogic/go-arcade/pkg/opt"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns the tool definitions hosted by the service.
// Use WithToolkit to filter and WithLimit and WithOffset to paginate results.
func (c *Client) ListTools(ctx context.Context, opts ...opt.Opt) (*schema.ListToolsResponse, error) {
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Create request
	reqOpts := []client.RequestOpt{client.OptPath("tools")}
	if q := o.Query(opt.ToolkitKey, opt.LimitKey, opt.OffsetKey); len(q) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(q))
	}

	// Perform request
	var response schema.ListToolsResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, reqOpts...); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// ListFormattedTools returns the tools in a model function-calling format,
// which defaults to openai.
func (c *Client) ListFormattedTools(ctx context.Context, opts ...opt.Opt) (*schema.ListFormattedToolsResponse, error) {
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Create request
	reqOpts := []client.RequestOpt{client.OptPath("formatted_tools")}
	if q := o.Query(opt.ToolkitKey, opt.FormatKey, opt.LimitKey, opt.OffsetKey); len(q) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(q))
	}

	// Perform request
	var response schema.ListFormattedToolsResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, reqOpts...); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// GetTool returns a tool definition by qualified name, e.g. Sql.ExecuteQuery
func (c *Client) GetTool(ctx context.Context, name string) (*schema.ToolDefinition, error) {
	if name == "" {
		return nil, arcade.ErrBadParameter.With("tool name cannot be empty")
	}

	// Perform request
	var response schema.ToolDefinition
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("tools", "definition"), client.OptQuery(url.Values{"name": {name}})); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// ExecuteTool runs a tool by qualified name. A tool which fails still returns
// a response, with Success false and the error in the output.
func (c *Client) ExecuteTool(ctx context.Context, req schema.ExecuteToolRequest) (*schema.ExecuteToolResponse, error) {
	if req.ToolName == "" {
		return nil, arcade.ErrBadParameter.With("tool name cannot be empty")
	}

	// Create request
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// Perform request
	var response schema.ExecuteToolResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("tools", "execute")); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}
