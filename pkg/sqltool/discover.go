package sqltool

import (
	"context"
	"encoding/json"
	"strconv"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	arcade "github.com/mutablelogic/go-arcade"
	tool "github.com/mutablelogic/go-arcade/pkg/tool"
	types "github.com/mutablelogic/go-arcade/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type discoverTables struct {
	*Database
}

var _ tool.Tool = (*discoverTables)(nil)

// DiscoverTablesRequest defines the input for the DiscoverTables tool
type DiscoverTablesRequest struct {
	SchemaName string `json:"schema_name,omitempty" jsonschema:"The database schema to discover tables in (default: public)"`
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (*discoverTables) Name() string {
	return "DiscoverTables"
}

func (*discoverTables) Description() string {
	return "Discover all the tables in the SQL database when the list of tables is not known"
}

func (*discoverTables) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[DiscoverTablesRequest](nil)
}

func (t *discoverTables) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req DiscoverTablesRequest
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, arcade.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	if req.SchemaName == "" {
		req.SchemaName = DefaultSchema
	}
	return t.DiscoverTables(ctx, req.SchemaName)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DiscoverTables returns the names of the tables in a schema, sorted by name.
// For sqlite, the public schema is the main database.
func (d *Database) DiscoverTables(ctx context.Context, schemaName string) ([]string, error) {
	var query string
	var args []any
	switch d.dialect {
	case DialectPostgres:
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = ? AND table_type = 'BASE TABLE' ORDER BY table_name`
		args = append(args, schemaName)
	case DialectMySQL:
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = COALESCE(NULLIF(?, 'public'), DATABASE()) AND table_type = 'BASE TABLE' ORDER BY table_name`
		args = append(args, schemaName)
	case DialectSQLite:
		master, err := sqliteMaster(schemaName)
		if err != nil {
			return nil, err
		}
		query = `SELECT name FROM ` + master + ` WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	default:
		return nil, arcade.ErrNotImplemented.Withf("dialect %q", d.dialect)
	}

	tables := []string{}
	if err := d.db.SelectContext(ctx, &tables, d.db.Rebind(query), args...); err != nil {
		return nil, arcade.ErrInternalServerError.Withf("discover tables: %v", err)
	}
	return tables, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func isMainSchema(schemaName string) bool {
	return schemaName == "" || schemaName == DefaultSchema || schemaName == "main"
}

// sqliteMaster returns the schema table for an attached sqlite database
func sqliteMaster(schemaName string) (string, error) {
	if isMainSchema(schemaName) {
		return "sqlite_master", nil
	}
	if !types.IsIdentifier(schemaName) {
		return "", arcade.ErrBadParameter.Withf("invalid schema name: %q", schemaName)
	}
	return strconv.Quote(schemaName) + ".sqlite_master", nil
}
