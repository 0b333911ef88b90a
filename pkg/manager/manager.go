package manager

import (
	"io"
	"sort"
	"strings"

	// Packages
	log "github.com/charmbracelet/log"
	model "github.com/mutablelogic/go-arcade/pkg/model"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Manager hosts toolkits, executes their tools and runs chat completions
// which may call those tools
type Manager struct {
	toolkits  map[string]*tool.Toolkit
	completer model.Completer
	logger    *log.Logger
	tracer    trace.Tracer
	model     string
	maxRounds uint
	version   string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultMaxRounds is the number of model rounds a chat completion may
	// take before tool calling stops
	DefaultMaxRounds = 5
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewManager(opts ...Opt) (*Manager, error) {
	m := new(Manager)
	m.toolkits = make(map[string]*tool.Toolkit)
	m.maxRounds = DefaultMaxRounds
	m.model = model.DefaultModel

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	// Discard logs unless a logger was set
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	// Set the toolkit versions
	if m.version != "" {
		for _, tk := range m.toolkits {
			tk.SetVersion(m.version)
		}
	}

	// Return success
	return m, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Toolkits returns the names of the hosted toolkits, sorted
func (m *Manager) Toolkits() []string {
	result := make([]string, 0, len(m.toolkits))
	for _, tk := range m.toolkits {
		result = append(result, tk.Name())
	}
	sort.Strings(result)
	return result
}

// Version returns the version reported by the manager
func (m *Manager) Version() string {
	return m.version
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (m *Manager) toolkit(name string) *tool.Toolkit {
	return m.toolkits[strings.ToLower(name)]
}
