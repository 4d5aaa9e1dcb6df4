package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/promptkit/internal/derrors"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of grammar validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate checks a grammar file against the schema and then for mistakes
// the schema cannot express, such as duplicate names.
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, derrors.NewNotFoundError(path, "grammar file not found: "+path)
	}
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to read grammar", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	g, err := ParseGrammar(content, filepath.Ext(path))
	if err != nil {
		result.addError("syntax", fmt.Sprintf("Failed to parse grammar: %v", err))
		return result, nil
	}

	ValidateGrammar(g, result)
	return result, nil
}

// ValidateGrammar records in result every naming problem of g. All
// problems are reported, not just the first.
func ValidateGrammar(g *Grammar, result *ValidationResult) {
	validateOptions("options", g.Options, result)
	validateCommands("commands", g.Commands, result)
}

func validateCommands(field string, specs []CommandSpec, result *ValidationResult) {
	seen := make(map[string]bool)
	for i, spec := range specs {
		f := fmt.Sprintf("%s/%d", field, i)
		switch {
		case strings.TrimSpace(spec.Name) == "":
			result.addError(f, "Command name is empty")
		case strings.ContainsAny(spec.Name, " \t\""):
			result.addError(f, fmt.Sprintf("Command name '%s' contains whitespace or quotes", spec.Name))
		case seen[spec.Name]:
			result.addError(f, fmt.Sprintf("Duplicate command '%s'", spec.Name))
		}
		seen[spec.Name] = true

		validateOptions(f+"/options", spec.Options, result)
		validateCommands(f+"/commands", spec.Commands, result)
	}
}

func validateOptions(field string, specs []OptionSpec, result *ValidationResult) {
	seen := make(map[string]bool)
	for i, spec := range specs {
		f := fmt.Sprintf("%s/%d", field, i)
		if len(spec.Flags) == 0 {
			result.addError(f, "Option declares no flags")
		}
		for _, flag := range spec.Flags {
			switch {
			case !strings.HasPrefix(flag, "-"):
				result.addError(f, fmt.Sprintf("Flag '%s' must start with '-'", flag))
			case seen[flag]:
				result.addError(f, fmt.Sprintf("Duplicate flag '%s'", flag))
			}
			seen[flag] = true
		}
	}
}
