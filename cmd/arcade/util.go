package main

import (
	"encoding/json"
	"fmt"

	// Packages
	arcade "github.com/mutablelogic/go-arcade"
	yaml "gopkg.in/yaml.v3"
)

// write outputs v as indented JSON or as YAML. YAML keys follow the JSON
// field names.
func (g *Globals) write(format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	switch format {
	case "json":
		g.out.Println(string(data))
	case "yaml":
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		g.out.Printf("%s", out)
	default:
		return arcade.ErrBadParameter.Withf("unsupported format %q", format)
	}
	return nil
}

// summary returns a human-readable summary of the rows displayed.
// length is the number of rows shown, offset is the starting row index (0-based),
// and total is the total number of matching rows.
func summary(length, offset, total int) string {
	if total == 0 {
		return "No results"
	}
	if offset == 0 && length >= total {
		return fmt.Sprintf("All %d rows displayed", total)
	}
	return fmt.Sprintf("Displaying rows %d-%d of %d", offset+1, offset+length, total)
}
