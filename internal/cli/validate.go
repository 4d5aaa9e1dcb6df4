package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/promptkit/internal/config"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	Path string // empty means promptkit.<ext> in the current directory
	Out  io.Writer
}

// Validate validates a grammar file
func Validate(params ValidateParams) error {
	out := output(params.Out)

	path := params.Path
	if path == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		found, ok := findGrammarFile(currentDir)
		if !ok {
			return fmt.Errorf("no grammar file found in current directory")
		}
		path = found
	}

	_, _ = fmt.Fprintf(out, "Validating: %s\n\n", path)

	result, err := config.Validate(path)
	if err != nil {
		return err
	}

	if result.Valid {
		_, _ = fmt.Fprintln(out, "✅ Grammar is valid!")
		return nil
	}

	_, _ = fmt.Fprintln(out, "❌ Grammar has errors:")
	for i, validationErr := range result.Errors {
		_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	_, _ = fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
