package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// writeOutput prints v to w in the requested format.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// dumpToTmpFile writes v as indented JSON into a new temp file.
func dumpToTmpFile(v any) (string, error) {
	file, err := os.CreateTemp("", app+"_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := writeOutput(file, formatJSON, v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
