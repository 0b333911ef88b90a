package main

import (
	"bytes"
	"testing"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	ui "github.com/mutablelogic/go-arcade/pkg/ui"
	assert "github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("No results", summary(0, 0, 0))
	assert.Equal("All 3 rows displayed", summary(3, 0, 3))
	assert.Equal("Displaying rows 2-2 of 3", summary(1, 1, 3))
}

func TestWrite(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	g := &Globals{out: ui.NewWriter(&buf)}

	value := map[string]any{"tool_name": "Sql.DiscoverTables", "success": true}
	assert.NoError(g.write("json", value))
	assert.Equal("{\n  \"success\": true,\n  \"tool_name\": \"Sql.DiscoverTables\"\n}\n", buf.String())

	buf.Reset()
	assert.NoError(g.write("yaml", value))
	assert.Equal("success: true\ntool_name: Sql.DiscoverTables\n", buf.String())

	assert.ErrorIs(g.write("xml", value), arcade.ErrBadParameter)
}
