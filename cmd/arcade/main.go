package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	log "github.com/charmbracelet/log"
	godotenv "github.com/joho/godotenv"
	demo "github.com/mutablelogic/go-arcade/pkg/demo"
	ui "github.com/mutablelogic/go-arcade/pkg/ui"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Tool service
	URL     string        `name:"url" env:"ARCADE_URL" default:"http://localhost:9099/v1" help:"Tool service endpoint"`
	APIKey  string        `name:"api-key" env:"ARCADE_API_KEY" help:"Tool service API key"`
	User    string        `name:"user" env:"USER_ID" help:"User identifier sent with requests"`
	Timeout time.Duration `name:"timeout" default:"2m" help:"Request timeout"`

	// Upstream model
	OpenAI `embed:"" help:"OpenAI configuration"`

	// Context
	ctx      context.Context
	logger   *log.Logger
	tracer   trace.Tracer
	out      *ui.Writer
	execName string
}

type OpenAI struct {
	OpenAIKey string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	OpenAIURL string `name:"openai-url" env:"OPENAI_BASE_URL" help:"OpenAI-compatible endpoint"`
}

type CLI struct {
	Globals

	// Commands
	ToolCommands `embed:""`
	ChatCommands `embed:""`
	Demo         DemoCommands   `cmd:"" name:"demo" help:"Run a demonstration." group:"DEMO"`
	Server       ServerCommands `cmd:"" name:"server" help:"Tool service." group:"SERVER"`
	Version      VersionCommand `cmd:"" name:"version" help:"Print the version."`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Environment from .env, if present; existing variables take precedence
	_ = godotenv.Load()

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Tool-calling service and demonstration client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"model":    demo.DefaultModel,
			"document": demo.DefaultDocument,
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Create a logger
	level := log.InfoLevel
	if cli.Debug {
		level = log.DebugLevel
	}
	cli.Globals.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: cli.Verbose,
		Level:           level,
		Prefix:          cli.Globals.execName,
	})

	// Tracing uses the global provider, which is a no-op unless one is installed
	cli.Globals.tracer = otel.Tracer(cli.Globals.execName)

	// Console output
	cli.Globals.out = ui.NewWriter(os.Stdout)

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
