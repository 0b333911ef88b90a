package sqltool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	arcade "github.com/mutablelogic/go-arcade"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
	types "github.com/mutablelogic/go-arcade/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type getTableSchema struct {
	*Database
}

var _ tool.Tool = (*getTableSchema)(nil)

// GetTableSchemaRequest defines the input for the GetTableSchema tool
type GetTableSchemaRequest struct {
	SchemaName string `json:"schema_name" jsonschema:"The database schema to get the table schema of"`
	TableName  string `json:"table_name" jsonschema:"The table to get the schema of"`
}

type column struct {
	Name string `db:"col"`
	Type string `db:"typ"`
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (*getTableSchema) Name() string {
	return "GetTableSchema"
}

func (*getTableSchema) Description() string {
	return "Get the schema of a table in the SQL database when the schema is not known, but the name of the table is provided"
}

func (*getTableSchema) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[GetTableSchemaRequest](nil)
}

func (t *getTableSchema) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req GetTableSchemaRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, arcade.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	if req.TableName == "" {
		return nil, arcade.ErrBadParameter.With("table_name is required")
	}
	if req.SchemaName == "" {
		req.SchemaName = DefaultSchema
	}
	return t.GetTableSchema(ctx, req.SchemaName, req.TableName)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetTableSchema returns one "column: type" entry per column of a table, in
// column order. The type is a coarse family such as int, str or datetime.
func (d *Database) GetTableSchema(ctx context.Context, schemaName, tableName string) ([]string, error) {
	var query string
	var args []any
	switch d.dialect {
	case DialectPostgres:
		query = `SELECT column_name AS col, data_type AS typ FROM information_schema.columns WHERE table_schema = ? AND table_name = ? ORDER BY ordinal_position`
		args = append(args, schemaName, tableName)
	case DialectMySQL:
		query = `SELECT column_name AS col, data_type AS typ FROM information_schema.columns WHERE table_schema = COALESCE(NULLIF(?, 'public'), DATABASE()) AND table_name = ? ORDER BY ordinal_position`
		args = append(args, schemaName, tableName)
	case DialectSQLite:
		if isMainSchema(schemaName) {
			query = `SELECT name AS col, type AS typ FROM pragma_table_info(?) ORDER BY cid`
			args = append(args, tableName)
		} else if types.IsIdentifier(schemaName) {
			query = `SELECT name AS col, type AS typ FROM pragma_table_info(?, ?) ORDER BY cid`
			args = append(args, tableName, schemaName)
		} else {
			return nil, arcade.ErrBadParameter.Withf("invalid schema name: %q", schemaName)
		}
	default:
		return nil, arcade.ErrNotImplemented.Withf("dialect %q", d.dialect)
	}

	var columns []column
	if err := d.db.SelectContext(ctx, &columns, d.db.Rebind(query), args...); err != nil {
		return nil, arcade.ErrInternalServerError.Withf("get table schema: %v", err)
	} else if len(columns) == 0 {
		return nil, arcade.ErrNotFound.Withf("table %q in schema %q", tableName, schemaName)
	}

	result := make([]string, 0, len(columns))
	for _, c := range columns {
		result = append(result, fmt.Sprintf("%s: %s", c.Name, TypeFamily(c.Type)))
	}
	return result, nil
}

// TypeFamily maps a database column type onto a coarse family: int, float,
// Decimal, bool, datetime, date, time, dict, bytes or str
func TypeFamily(columnType string) string {
	t := strings.ToLower(strings.TrimSpace(columnType))
	switch {
	case t == "":
		return "str"
	case strings.HasPrefix(t, "bool"), t == "bit", t == "tinyint(1)":
		return "bool"
	case strings.Contains(t, "interval"), strings.Contains(t, "point"):
		return "str"
	case strings.Contains(t, "int"), strings.Contains(t, "serial"):
		return "int"
	case strings.HasPrefix(t, "numeric"), strings.HasPrefix(t, "decimal"), t == "money":
		return "Decimal"
	case strings.Contains(t, "float"), strings.Contains(t, "double"), strings.HasPrefix(t, "real"):
		return "float"
	case strings.HasPrefix(t, "timestamp"), strings.HasPrefix(t, "datetime"):
		return "datetime"
	case t == "date":
		return "date"
	case strings.HasPrefix(t, "time"):
		return "time"
	case strings.HasPrefix(t, "json"):
		return "dict"
	case strings.Contains(t, "blob"), strings.Contains(t, "binary"), t == "bytea":
		return "bytes"
	}
	return "str"
}
