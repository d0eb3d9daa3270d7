// Package output prints command results as text, json or yaml.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Write encodes v to w. Text falls back to yaml, which reads well in a
// terminal.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("output: couldn't encode json: %w", err)
		}
	case "yaml", "text", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("output: couldn't encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("output: couldn't encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}
	return nil
}
