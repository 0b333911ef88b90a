package sqltool

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	pq "github.com/lib/pq"
	arcade "github.com/mutablelogic/go-arcade"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type executeQuery struct {
	*Database
}

var _ tool.Tool = (*executeQuery)(nil)

// ExecuteQueryRequest defines the input for the ExecuteQuery tool
type ExecuteQueryRequest struct {
	Query      string `json:"query" jsonschema:"The SQL query to execute"`
	SchemaName string `json:"schema_name,omitempty" jsonschema:"The database schema the query refers to"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	retryPrompt = "Load the database schema (<GetTableSchema>) and try again."
	retryAfter  = 10 * time.Millisecond
)

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (*executeQuery) Name() string {
	return "ExecuteQuery"
}

func (*executeQuery) Description() string {
	return "You have a connection to a SQL database. Execute a query and return the results against the SQL database"
}

func (*executeQuery) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ExecuteQueryRequest](nil)
}

func (t *executeQuery) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ExecuteQueryRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, arcade.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, arcade.ErrBadParameter.With("query is required")
	}
	return t.ExecuteQuery(ctx, req.SchemaName, req.Query)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ExecuteQuery runs a query in a read-only transaction which is always
// rolled back, and returns one tuple-like string per row. A failed query
// returns a retryable tool error.
func (d *Database) ExecuteQuery(ctx context.Context, schemaName, query string) ([]string, error) {
	rows, err := d.query(ctx, schemaName, query)
	if err != nil {
		return nil, tool.NewRetryableError(err,
			fmt.Sprintf("Query failed: %v", err),
			fmt.Sprintf("Query '%s' failed.", query),
			retryPrompt, retryAfter,
		)
	}
	return rows, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (d *Database) query(ctx context.Context, schemaName, query string) ([]string, error) {
	tx, err := d.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadUncommitted,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if d.dialect == DialectPostgres && schemaName != "" {
		if _, err := tx.ExecContext(ctx, "SET LOCAL search_path TO "+pq.QuoteIdentifier(schemaName)); err != nil {
			return nil, err
		}
	}

	rows, err := tx.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		result = append(result, formatRow(values))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// formatRow renders a row as a tuple, e.g. (1, 'alice', None). A single
// column renders with a trailing comma, e.g. (1,)
func formatRow(values []any) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatValue(v))
	}
	if len(values) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return quote(v)
	case []byte:
		if utf8.Valid(v) {
			return quote(string(v))
		}
		return fmt.Sprintf("b'%x'", v)
	case time.Time:
		return quote(v.Format(time.DateTime))
	default:
		return fmt.Sprint(v)
	}
}

// quote a string the way a tuple prints it: single quotes unless the string
// contains a single quote and no double quote
func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
