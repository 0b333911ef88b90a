package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	schema "github.com/mutablelogic/go-arcade/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// SchemaMap maps a table name to its schema description
type SchemaMap map[string]any

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const sqlAuthorPrompt = `
You are an expert SQL analyst.
For all questions, you will use only the information provided to you to answer the question, and no prior knowledge.
The SQL dialect is %q.
ONLY RESPOND WITH A SQL STATEMENT AND NOTHING ELSE, ALL ON A SINGLE LINE.  DO NOT EXPLAIN THE SQL STATEMENT.  DO NOT FORMAT THE SQL STATEMENT IN MARKDOWN.  DO NOT ADD ANYTHING ELSE TO THE RESPONSE.
`

const sqlAuthorQuestion = `
  What would be the best SQL query to answer the following question:

  ---
  %s
  ---

  The database schema is:
  %s
  `

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SqlAuthor discovers the tables and their schemas by executing tools
// directly, then for each question asks the plain model to write a SQL
// statement, which is executed with Sql.ExecuteQuery.
func (d *Demo) SqlAuthor(ctx context.Context) error {
	if d.completer == nil {
		return arcade.ErrNotImplemented.With("a chat model is required to author SQL")
	}

	if err := d.listTools(ctx, "sql"); err != nil {
		return err
	}

	schemas, err := d.SchemaMap(ctx)
	if err != nil {
		return err
	}

	for _, question := range d.questions {
		if err := d.authorAndExecute(ctx, question, schemas); err != nil {
			return err
		}
	}

	return nil
}

// SchemaMap executes Sql.DiscoverTables and then Sql.GetTableSchema for each
// table, printing each as it goes
func (d *Demo) SchemaMap(ctx context.Context) (SchemaMap, error) {
	resp, err := d.execute(ctx, "Sql.DiscoverTables", map[string]any{
		"schema_name": d.schema,
	})
	if err != nil {
		return nil, err
	} else if !resp.Success {
		return nil, toolErr("Sql.DiscoverTables", resp)
	}
	tables := resp.Strings()
	d.out.Printf("\n[🔍] Discovered the following tables: %s\n", strings.Join(tables, ", "))

	schemas := make(SchemaMap, len(tables))
	for _, table := range tables {
		resp, err := d.execute(ctx, "Sql.GetTableSchema", map[string]any{
			"schema_name": d.schema,
			"table_name":  table,
		})
		if err != nil {
			return nil, err
		} else if !resp.Success {
			return nil, toolErr("Sql.GetTableSchema", resp)
		}
		schemas[table] = resp.Value()
		d.out.Printf("[📜] Schema for %s: %s\n", table, strings.Join(resp.Strings(), ","))
	}

	return schemas, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (d *Demo) authorAndExecute(ctx context.Context, question string, schemas SchemaMap) error {
	d.out.Printf("\n[❓] Asking: %s\n", question)

	data, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return err
	}

	// Ask the plain model for a statement
	d.logger.Debug("authoring sql", "model", d.model, "question", question)
	completion, err := d.completer.Complete(ctx, schema.CompletionRequest{
		Model: d.model,
		User:  d.user,
		Messages: []schema.ChatMessage{
			schema.NewSystemMessage(fmt.Sprintf(sqlAuthorPrompt, d.dialect)),
			schema.NewUserMessage(fmt.Sprintf(sqlAuthorQuestion, question, data)),
		},
	})
	if err != nil {
		return err
	}
	sql := strings.TrimSpace(completion.Message.Content)
	d.out.Printf("[📝] SQL statement: %s\n", sql)

	// Execute the statement
	resp, err := d.execute(ctx, "Sql.ExecuteQuery", map[string]any{
		"schema_name": d.schema,
		"query":       sql,
	})
	if err != nil {
		return err
	}
	if resp.Output != nil && resp.Output.Error != nil {
		d.out.Println(resp.Output.Error.Message)
	} else {
		for _, row := range resp.Strings() {
			d.out.Println(row)
		}
	}

	return nil
}

func toolErr(name string, resp *schema.ExecuteToolResponse) error {
	if resp.Output != nil && resp.Output.Error != nil {
		return arcade.ErrToolFailed.Withf("%s: %s", name, resp.Output.Error.Message)
	}
	return arcade.ErrToolFailed.With(name)
}
