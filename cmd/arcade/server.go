package main

import (
	"crypto/tls"
	"fmt"
	"os"

	// Packages
	httphandler "github.com/mutablelogic/go-arcade/pkg/httphandler"
	manager "github.com/mutablelogic/go-arcade/pkg/manager"
	parsetool "github.com/mutablelogic/go-arcade/pkg/parsetool"
	sqltool "github.com/mutablelogic/go-arcade/pkg/sqltool"
	version "github.com/mutablelogic/go-arcade/pkg/version"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ServerCommands struct {
	RunServer RunServer `cmd:"" name:"run" help:"Run the tool service."`
}

type RunServer struct {
	Addr      string `name:"addr" env:"ARCADE_ADDR" default:"localhost:9099" help:"Listen address"`
	Prefix    string `name:"prefix" default:"/v1" help:"Path prefix for the API"`
	Origin    string `name:"origin" default:"" help:"Cross-origin protection (CSRF) origin, empty for same-origin only"`
	Database  string `name:"database" env:"DATABASE_CONNECTION_STRING" help:"Connection string for the Sql toolkit, which is disabled when empty"`
	NoParse   bool   `name:"no-parse" help:"Disable the Parse toolkit"`
	Model     string `name:"model" default:"gpt-4o-mini" help:"Default model for chat completions"`
	MaxRounds uint   `name:"max-rounds" default:"5" help:"Maximum tool-calling rounds per chat completion"`

	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunServer) Run(ctx *Globals) error {
	return cmd.WithManager(ctx, func(manager *manager.Manager) error {
		return cmd.Serve(ctx, manager)
	})
}

// WithManager creates the toolkits and the manager, invokes fn, then closes
// the database regardless of whether fn returned an error.
func (cmd *RunServer) WithManager(ctx *Globals, fn func(*manager.Manager) error) error {
	opts := []manager.Opt{
		manager.WithLogger(ctx.logger),
		manager.WithTracer(ctx.tracer),
		manager.WithVersion(version.Version()),
		manager.WithDefaultModel(cmd.Model),
		manager.WithMaxRounds(cmd.MaxRounds),
	}

	// Sql toolkit
	if cmd.Database != "" {
		db, err := sqltool.New(cmd.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		toolkit, err := db.Toolkit()
		if err != nil {
			return fmt.Errorf("failed to create Sql toolkit: %w", err)
		}
		opts = append(opts, manager.WithToolkit(toolkit))
		ctx.logger.Info("sql toolkit", "dialect", db.Dialect())
	}

	// Parse toolkit
	if !cmd.NoParse {
		toolkit, err := parsetool.NewToolkit(ctx.clientOpts()...)
		if err != nil {
			return fmt.Errorf("failed to create Parse toolkit: %w", err)
		}
		opts = append(opts, manager.WithToolkit(toolkit))
	}

	// Upstream model
	if completer, err := ctx.Completer(); err != nil {
		return fmt.Errorf("failed to create OpenAI client: %w", err)
	} else if completer != nil {
		opts = append(opts, manager.WithCompleter(completer))
	} else {
		ctx.logger.Warn("chat completions are disabled, set OPENAI_API_KEY to enable")
	}

	// Create the manager
	manager, err := manager.NewManager(opts...)
	if err != nil {
		return err
	}

	// Run the server with the manager
	return fn(manager)
}

// Serve creates the httpserver instance and blocks until context
// cancellation (e.g. SIGINT).
func (cmd *RunServer) Serve(ctx *Globals, manager *manager.Manager) error {
	// Create the TLS config if TLS options are provided
	var tlsConfig *tls.Config
	if cmd.TLS.CertFile != "" || cmd.TLS.KeyFile != "" {
		var pemData [][]byte
		if cmd.TLS.CertFile != "" {
			certData, err := os.ReadFile(cmd.TLS.CertFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS certificate: %w", err)
			}
			pemData = append(pemData, certData)
		}
		if cmd.TLS.KeyFile != "" {
			keyData, err := os.ReadFile(cmd.TLS.KeyFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS key: %w", err)
			}
			pemData = append(pemData, keyData)
		}
		var err error
		tlsConfig, err = httpserver.TLSConfig(cmd.TLS.ServerName, false, pemData...)
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	// Create the server
	httpserver, err := httpserver.New(cmd.Addr, tlsConfig)
	if err != nil {
		return err
	}

	// Create the HTTP router on the server mux
	router, err := httprouter.NewRouter(ctx.ctx, httpserver.Router(), cmd.Prefix, cmd.Origin, "Arcade Tool Service", manager.Version())
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(manager, router, ctx.APIKey); err != nil {
		return err
	}
	if ctx.APIKey == "" {
		ctx.logger.Warn("no API key set, requests are not authorized")
	}

	// Run the server
	ctx.logger.Info("started", "name", ctx.execName, "version", manager.Version(), "addr", httpserver.Addr(), "toolkits", manager.Toolkits())
	if err := httpserver.Run(ctx.ctx); err != nil {
		return err
	}

	// Return success
	ctx.logger.Info("stopped", "name", ctx.execName)
	return nil
}
