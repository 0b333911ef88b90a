package httphandler

import (
	"net/http"

	// Packages
	manager "github.com/mutablelogic/go-arcade/pkg/manager"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /tools
func ToolListHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "tools", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				var req schema.ListToolsRequest
				if err := httprequest.Query(r.URL.Query(), &req); err != nil {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With(err))
					return
				}
				resp, err := manager.ListTools(r.Context(), req)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List tool definitions, optionally filtered by toolkit",
			},
		})
}

// Path: /formatted_tools
func FormattedToolListHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "formatted_tools", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				var req schema.ListFormattedToolsRequest
				if err := httprequest.Query(r.URL.Query(), &req.ListToolsRequest); err != nil {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With(err))
					return
				}
				req.Format = r.URL.Query().Get("format")
				resp, err := manager.ListFormattedTools(r.Context(), req)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "List tools in the OpenAI function-calling format",
			},
		})
}

// Path: /tools/definition
func ToolDefinitionHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "tools/definition", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				name := r.URL.Query().Get("name")
				if name == "" {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With("missing name parameter"))
					return
				}
				resp, err := manager.GetTool(r.Context(), name)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Get a tool definition by qualified name",
			},
		})
}

// Path: /tools/execute
func ToolExecuteHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "tools/execute", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.ExecuteToolRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With(err))
					return
				}
				resp, err := manager.ExecuteTool(r.Context(), req)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Execute a tool by name",
			},
		})
}
