package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	httphandler "github.com/mutablelogic/go-arcade/pkg/httphandler"
	manager "github.com/mutablelogic/go-arcade/pkg/manager"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	serverschema "github.com/mutablelogic/go-server/pkg/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK TOOL

type mockTool struct {
	name        string
	description string
	result      any
	err         error
}

func (t *mockTool) Name() string                        { return t.name }
func (t *mockTool) Description() string                 { return t.description }
func (t *mockTool) Schema() (*jsonschema.Schema, error) { return nil, nil }
func (t *mockTool) Run(_ context.Context, _ json.RawMessage) (any, error) {
	return t.result, t.err
}

///////////////////////////////////////////////////////////////////////////////
// MOCK COMPLETER

type mockCompleter struct {
	sync.Mutex
	responses []schema.Completion
}

func (c *mockCompleter) Complete(_ context.Context, _ schema.CompletionRequest) (*schema.Completion, error) {
	c.Lock()
	defer c.Unlock()
	if len(c.responses) == 0 {
		return nil, errors.New("no more responses")
	}
	response := c.responses[0]
	c.responses = c.responses[1:]
	return &response, nil
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

func newTestManager(t *testing.T, opts ...manager.Opt) *manager.Manager {
	t.Helper()
	tk, err := tool.NewToolkit("Sql", "SQL tools",
		&mockTool{name: "DiscoverTables", description: "Discover tables", result: []string{"messages", "users"}},
		&mockTool{name: "ExecuteQuery", description: "Execute a query", err: tool.NewRetryableError(nil, "Query failed", "", "", 0)},
	)
	if err != nil {
		t.Fatal(err)
	}
	m, err := manager.NewManager(append([]manager.Opt{manager.WithToolkit(tk), manager.WithVersion("0.0.1")}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// router mounts registered path items on a ServeMux at the root
type router struct {
	*http.ServeMux
	paths []string
}

func (r *router) RegisterPath(path string, _ *serverschema.Schema, pathitem httprequest.PathItem) error {
	if spec := pathitem.Spec(path, nil); spec == nil {
		return errors.New("missing spec for " + path)
	}
	r.paths = append(r.paths, path)
	r.HandleFunc("/"+path, pathitem.Handler())
	return nil
}

func serveMux(t *testing.T, manager *manager.Manager, apiKey string) *router {
	t.Helper()
	r := &router{ServeMux: http.NewServeMux()}
	if err := httphandler.RegisterHandlers(manager, r, apiKey); err != nil {
		t.Fatal(err)
	}
	return r
}

///////////////////////////////////////////////////////////////////////////////
// AUTHORIZATION TESTS

func TestAuthorize(t *testing.T) {
	handler := httphandler.Authorize("secret", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		header string
		code   int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer wrong", http.StatusUnauthorized},
		{"Basic secret", http.StatusUnauthorized},
		{"Bearer secret", http.StatusNoContent},
		{"bearer secret", http.StatusNoContent},
	}
	for _, test := range tests {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/tools", nil)
		if test.header != "" {
			r.Header.Set("Authorization", test.header)
		}
		handler(w, r)
		if w.Code != test.code {
			t.Fatalf("header %q: expected %d, got %d", test.header, test.code, w.Code)
		}
	}
}

func TestAuthorize_Disabled(t *testing.T) {
	handler := httphandler.Authorize("", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/tools", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestRegisterHandlers_Authorization(t *testing.T) {
	mux := serveMux(t, newTestManager(t), "secret")
	if len(mux.paths) != 6 {
		t.Fatalf("expected 6 paths, got %v", mux.paths)
	}

	// The health check is open
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", w.Code)
	}

	// Everything else needs the key
	for _, path := range []string{"/tools", "/formatted_tools?format=openai", "/tools/definition?name=Sql.DiscoverTables"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, w.Code)
		}

		w = httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, path, nil)
		r.Header.Set("Authorization", "Bearer secret")
		mux.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 with key, got %d", path, w.Code)
		}
	}
	for _, path := range []string{"/tools/execute", "/chat/completions"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// HEALTH TESTS

func TestHealth_OK(t *testing.T) {
	mux := serveMux(t, newTestManager(t), "")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp schema.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Healthy || resp.Version != "0.0.1" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(resp.Toolkits) != 1 || resp.Toolkits[0] != "Sql" {
		t.Fatalf("expected toolkits [Sql], got %v", resp.Toolkits)
	}
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	mux := serveMux(t, newTestManager(t), "")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
