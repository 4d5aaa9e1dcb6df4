package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/promptkit/internal/config"
)

// SchemaParams contains parameters for the Schema command
type SchemaParams struct {
	OutputPath string // empty prints to Out
	Out        io.Writer
}

// Schema displays or exports the JSON Schema for grammar files
func Schema(params SchemaParams) error {
	out := output(params.Out)
	schemaJSON := config.GetSchemaJSON()

	if params.OutputPath != "" {
		if err := os.WriteFile(params.OutputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", params.OutputPath, err)
		}
		_, _ = fmt.Fprintf(out, "JSON Schema written to: %s\n", params.OutputPath)
		return nil
	}

	_, _ = fmt.Fprintln(out, schemaJSON)
	return nil
}
