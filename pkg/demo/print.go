package demo

import (
	// Packages
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
	ui "github.com/mutablelogic/go-arcade/pkg/ui"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// PrintTools writes a header and then "name: description" for each tool
func PrintTools(w *ui.Writer, tools []schema.FormattedTool) {
	w.Heading("⚙️ Found the following tools:")
	for _, tool := range tools {
		w.Printf("%s: %s\n", tool.Function.Name, tool.Function.Description)
	}
}

// DisplayResponse writes the content of the first choice and the tool calls
// the service performed. Absent fields are written as empty.
func DisplayResponse(w *ui.Writer, resp *schema.ChatResponse) {
	w.Rule("--- response ---")
	w.Markdown(resp.FirstContent())
	w.Rule("--- tool calls ---")
	for _, call := range resp.FirstToolCalls() {
		w.Printf("%s: %s\n", call.Function.Name, call.Function.Arguments)
	}
	w.Rule("---")
}
