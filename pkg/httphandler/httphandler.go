package httphandler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	// Package
	arcade "github.com/mutablelogic/go-arcade"
	manager "github.com/mutablelogic/go-arcade/pkg/manager"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router registers a path item under the router prefix
type Router interface {
	RegisterPath(path string, params *jsonschema.Schema, pathitem httprequest.PathItem) error
}

// pathItem adapts a handler and its OpenAPI description to a PathItem
type pathItem struct {
	handler http.HandlerFunc
	spec    *openapi.PathItem
}

var _ httprequest.PathItem = (*pathItem)(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers the tool and chat handlers with the router.
// When apiKey is not empty, every handler except the health check requires
// the key as a bearer token.
func RegisterHandlers(manager *manager.Manager, router Router, apiKey string) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		result = errors.Join(result, router.RegisterPath(path, nil, &pathItem{handler, spec}))
	}
	authorized := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		register(path, Authorize(apiKey, handler), spec)
	}

	// Register handlers
	authorized(ToolListHandler(manager))
	authorized(FormattedToolListHandler(manager))
	authorized(ToolDefinitionHandler(manager))
	authorized(ToolExecuteHandler(manager))
	authorized(ChatCompletionHandler(manager))

	// The health check does not require authorization
	register(HealthHandler(manager))

	// Return any errors
	return result
}

// Authorize wraps a handler with a bearer token check. An empty key
// disables the check.
func Authorize(apiKey string, handler http.HandlerFunc) http.HandlerFunc {
	if apiKey == "" {
		return handler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		scheme, token, _ := strings.Cut(r.Header.Get("Authorization"), " ")
		if !strings.EqualFold(scheme, "Bearer") || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(apiKey)) != 1 {
			_ = httpresponse.Error(w, httpErr(arcade.ErrUnauthorized.With("invalid or missing API key")))
			return
		}
		handler(w, r)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (p *pathItem) Handler() http.HandlerFunc {
	return p.handler
}

func (p *pathItem) Spec(string, *jsonschema.Schema) *openapi.PathItem {
	return p.spec
}

// WrapHandler wraps the handler for requests with the given method only
func (p *pathItem) WrapHandler(method string, fn func(http.HandlerFunc) http.HandlerFunc) {
	next, wrapped := p.handler, fn(p.handler)
	p.handler = func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.Method, method) {
			wrapped(w, r)
		} else {
			next(w, r)
		}
	}
}

// httpErr converts an arcade.Err to an httpresponse.Err, preserving the
// original error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var arcadeErr arcade.Err
	if !errors.As(err, &arcadeErr) {
		return err
	}
	switch arcadeErr {
	case arcade.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case arcade.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case arcade.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case arcade.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case arcade.ErrUnauthorized:
		return httpresponse.Err(http.StatusUnauthorized).With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
