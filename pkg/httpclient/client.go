package httpclient

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a typed client of the tool-calling service API.
type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new client with the given base URL and options.
// The url parameter should point to the versioned API endpoint, e.g.
// "http://localhost:9099/v1". When apiKey is not empty it is sent as a
// bearer token with every request.
func New(url, apiKey string, opts ...client.ClientOpt) (*Client, error) {
	opts = append(opts, client.OptEndpoint(url))
	if apiKey != "" {
		opts = append(opts, client.OptReqToken(client.Token{Scheme: client.Bearer, Value: apiKey}))
	}
	c := new(Client)
	if client, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		c.Client = client
	}
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Health returns the health of the service.
func (c *Client) Health(ctx context.Context) (*schema.HealthResponse, error) {
	var response schema.HealthResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("health")); err != nil {
		return nil, err
	}
	return &response, nil
}
