package model

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Completer generates the next assistant message for a conversation. The
// message may request tool calls, using the formatted tool names.
type Completer interface {
	Complete(ctx context.Context, req schema.CompletionRequest) (*schema.Completion, error)
}
