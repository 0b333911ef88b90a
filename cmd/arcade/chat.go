package main

import (
	// Packages
	demo "github.com/mutablelogic/go-arcade/pkg/demo"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ChatCommands struct {
	Chat ChatCommand `cmd:"" name:"chat" help:"Ask a question which may use remote tools." group:"CHAT"`
}

type ChatCommand struct {
	Question   string   `arg:"" name:"question" help:"The question to ask"`
	Tools      []string `name:"tool" short:"t" help:"Permitted tools, e.g. Sql.DiscoverTables"`
	System     string   `name:"system" help:"System prompt"`
	Model      string   `name:"model" default:"${model}" help:"Model name"`
	ToolChoice string   `name:"tool-choice" enum:"generate,execute,none" default:"generate" help:"How the service handles tool calls"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChatCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// Make the messages
	var messages []schema.ChatMessage
	if cmd.System != "" {
		messages = append(messages, schema.NewSystemMessage(cmd.System))
	}
	messages = append(messages, schema.NewUserMessage(cmd.Question))

	// Ask the question
	response, err := client.ChatCompletion(ctx.ctx, schema.ChatRequest{
		Messages:   messages,
		Model:      cmd.Model,
		User:       ctx.User,
		Tools:      cmd.Tools,
		ToolChoice: cmd.ToolChoice,
	})
	if err != nil {
		return err
	}
	if response.Usage != nil {
		ctx.logger.Debug("usage", "prompt", response.Usage.PromptTokens, "completion", response.Usage.CompletionTokens)
	}

	// Display the response
	demo.DisplayResponse(ctx.out, response)
	return nil
}
