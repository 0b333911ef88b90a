package manager

import (
	"strings"

	// Packages
	log "github.com/charmbracelet/log"
	arcade "github.com/mutablelogic/go-arcade"
	model "github.com/mutablelogic/go-arcade/pkg/model"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring the manager
type Opt func(*Manager) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithToolkit adds a toolkit. Toolkit names are unique, ignoring case.
func WithToolkit(toolkit *tool.Toolkit) Opt {
	return func(m *Manager) error {
		if toolkit == nil {
			return arcade.ErrBadParameter.With("toolkit is required")
		}
		key := strings.ToLower(toolkit.Name())
		if _, exists := m.toolkits[key]; exists {
			return arcade.ErrConflict.Withf("duplicate toolkit %q", toolkit.Name())
		}
		m.toolkits[key] = toolkit
		return nil
	}
}

// WithCompleter sets the model used for chat completions
func WithCompleter(completer model.Completer) Opt {
	return func(m *Manager) error {
		if completer == nil {
			return arcade.ErrBadParameter.With("completer is required")
		}
		m.completer = completer
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Opt {
	return func(m *Manager) error {
		m.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used for spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(m *Manager) error {
		m.tracer = tracer
		return nil
	}
}

// WithDefaultModel sets the model used when a chat request does not name one
func WithDefaultModel(name string) Opt {
	return func(m *Manager) error {
		if name = strings.TrimSpace(name); name == "" {
			return arcade.ErrBadParameter.With("model name is required")
		}
		m.model = name
		return nil
	}
}

// WithMaxRounds sets the maximum number of model rounds in a chat completion
func WithMaxRounds(rounds uint) Opt {
	return func(m *Manager) error {
		if rounds == 0 {
			return arcade.ErrBadParameter.With("max rounds must be at least one")
		}
		m.maxRounds = rounds
		return nil
	}
}

// WithVersion sets the version reported in tool definitions and health checks
func WithVersion(version string) Opt {
	return func(m *Manager) error {
		m.version = version
		return nil
	}
}
