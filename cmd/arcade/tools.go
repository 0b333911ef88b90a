package main

import (
	"encoding/json"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	httpclient "github.com/mutablelogic/go-arcade/pkg/httpclient"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List available tools." group:"TOOL"`
	GetTool   GetToolCommand   `cmd:"" name:"tool" help:"Show the definition of a tool." group:"TOOL"`
	Execute   ExecuteCommand   `cmd:"" name:"execute" help:"Execute a tool with JSON input." group:"TOOL"`
	Health    HealthCommand    `cmd:"" name:"health" help:"Check the tool service health." group:"TOOL"`
}

type ListToolsCommand struct {
	schema.ListToolsRequest `embed:""`
	Format                  string `name:"format" enum:"text,json,yaml" default:"text" help:"Output format"`
}

type GetToolCommand struct {
	Name   string `arg:"" name:"name" help:"Qualified tool name, e.g. Sql.ExecuteQuery"`
	Format string `name:"format" enum:"json,yaml" default:"json" help:"Output format"`
}

type ExecuteCommand struct {
	Name   string          `arg:"" name:"name" help:"Qualified tool name, e.g. Sql.DiscoverTables"`
	Input  json.RawMessage `arg:"" name:"input" optional:"" help:"JSON input for the tool (optional)"`
	Format string          `name:"format" enum:"json,yaml" default:"json" help:"Output format"`
}

type HealthCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// List the tools
	response, err := client.ListTools(ctx.ctx,
		httpclient.WithToolkit(cmd.Toolkit),
		httpclient.WithLimit(cmd.Limit),
		httpclient.WithOffset(cmd.Offset),
	)
	if err != nil {
		return err
	}

	// Output as JSON or YAML
	if cmd.Format != "text" {
		return ctx.write(cmd.Format, response)
	}

	// Output as a table
	rows := make([][]string, 0, len(response.Items))
	for _, tool := range response.Items {
		rows = append(rows, []string{tool.FullyQualifiedName, tool.Toolkit.Version, tool.Description})
	}
	ctx.out.Table([]string{"Name", "Version", "Description"}, rows)
	ctx.out.Println(summary(len(response.Items), int(response.Offset), int(response.TotalCount)))

	return nil
}

func (cmd *GetToolCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := client.GetTool(ctx.ctx, cmd.Name)
	if err != nil {
		return err
	}
	return ctx.write(cmd.Format, response)
}

func (cmd *ExecuteCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// Decode the input, which is optional
	var input map[string]any
	if len(cmd.Input) > 0 {
		if err := json.Unmarshal(cmd.Input, &input); err != nil {
			return arcade.ErrBadParameter.Withf("invalid input: %v", err)
		}
	}

	// Execute the tool
	response, err := client.ExecuteTool(ctx.ctx, schema.ExecuteToolRequest{
		ToolName: cmd.Name,
		UserID:   ctx.User,
		Input:    input,
	})
	if err != nil {
		return err
	}
	ctx.logger.Debug("executed", "tool", cmd.Name, "id", response.ExecutionID, "duration", response.Duration)

	// A failed tool returns an error after writing the output
	if err := ctx.write(cmd.Format, response.Output); err != nil {
		return err
	}
	if !response.Success {
		if response.Output != nil && response.Output.Error != nil {
			return arcade.ErrToolFailed.With(response.Output.Error.Message)
		}
		return arcade.ErrToolFailed.With(cmd.Name)
	}
	return nil
}

func (cmd *HealthCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	response, err := client.Health(ctx.ctx)
	if err != nil {
		return err
	}
	return ctx.write("yaml", response)
}
