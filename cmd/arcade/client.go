package main

import (
	"os"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	httpclient "github.com/mutablelogic/go-arcade/pkg/httpclient"
	model "github.com/mutablelogic/go-arcade/pkg/model"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client returns a client of the tool service configured from the global flags.
func (g *Globals) Client() (*httpclient.Client, error) {
	if g.URL == "" {
		return nil, arcade.ErrBadParameter.With("missing --url or ARCADE_URL")
	}
	return httpclient.New(g.URL, g.APIKey, g.clientOpts()...)
}

// Completer returns the upstream chat model, or nil if no key is configured.
func (g *Globals) Completer() (model.Completer, error) {
	if g.OpenAIKey == "" {
		return nil, nil
	}
	return model.NewOpenAI(g.OpenAIKey, g.OpenAIURL)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) clientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	if g.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.Timeout))
	}
	return opts
}
