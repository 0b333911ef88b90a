package main

import (
	// Packages
	demo "github.com/mutablelogic/go-arcade/pkg/demo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type DemoCommands struct {
	Sql    SqlDemoCommand    `cmd:"" name:"sql" help:"Ask a SQL analyst about the database using the Sql toolkit."`
	Parse  ParseDemoCommand  `cmd:"" name:"parse" help:"Parse a document using the Parse toolkit."`
	Author AuthorDemoCommand `cmd:"" name:"author" help:"Have a model write SQL, then execute it with Sql.ExecuteQuery."`
}

type SqlDemoCommand struct {
	ConnectionString string `name:"db" env:"DB_CONNECTION_STRING" help:"Database connection string quoted in the prompt"`
	Model            string `name:"model" default:"${model}" help:"Model name"`
}

type ParseDemoCommand struct {
	Document string `name:"document" default:"${document}" help:"Document URL or path"`
	Model    string `name:"model" default:"${model}" help:"Model name"`
}

type AuthorDemoCommand struct {
	Schema    string   `name:"schema" default:"public" help:"Database schema"`
	Dialect   string   `name:"dialect" default:"POSTGRES" help:"SQL dialect named in the prompt"`
	Model     string   `name:"model" default:"${model}" help:"Model name"`
	Questions []string `arg:"" optional:"" name:"question" help:"Questions to answer"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *SqlDemoCommand) Run(ctx *Globals) error {
	d, err := ctx.newDemo(demo.WithConnectionString(cmd.ConnectionString), demo.WithModel(cmd.Model))
	if err != nil {
		return err
	}
	return d.SqlChat(ctx.ctx)
}

func (cmd *ParseDemoCommand) Run(ctx *Globals) error {
	d, err := ctx.newDemo(demo.WithDocument(cmd.Document), demo.WithModel(cmd.Model))
	if err != nil {
		return err
	}
	return d.ParseChat(ctx.ctx)
}

func (cmd *AuthorDemoCommand) Run(ctx *Globals) error {
	completer, err := ctx.Completer()
	if err != nil {
		return err
	}
	opts := []demo.Opt{
		demo.WithSchema(cmd.Schema),
		demo.WithDialect(cmd.Dialect),
		demo.WithModel(cmd.Model),
		demo.WithQuestions(cmd.Questions...),
	}
	if completer != nil {
		opts = append(opts, demo.WithCompleter(completer))
	}
	d, err := ctx.newDemo(opts...)
	if err != nil {
		return err
	}
	return d.SqlAuthor(ctx.ctx)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// newDemo returns the demonstrations, using the tool service client
func (g *Globals) newDemo(opts ...demo.Opt) (*demo.Demo, error) {
	client, err := g.Client()
	if err != nil {
		return nil, err
	}
	return demo.New(client, g.out, append([]demo.Opt{
		demo.WithLogger(g.logger),
		demo.WithUser(g.User),
	}, opts...)...)
}
