package httpclient

import (
	"context"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ChatCompletion sends messages to the chat completions endpoint. The service
// runs any permitted tool calls the model makes before answering.
func (c *Client) ChatCompletion(ctx context.Context, req schema.ChatRequest) (*schema.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, arcade.ErrBadParameter.With("messages cannot be empty")
	}

	// Create request
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// Perform request
	var response schema.ChatResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}
