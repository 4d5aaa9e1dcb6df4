package derrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammarError(t *testing.T) {
	err := NewGrammarError("list", "duplicate sub-command \"show\"")

	assert.Equal(t, "GRAMMAR_ERROR", err.Code())
	assert.Equal(t, "list", err.Command)
	assert.Equal(t, "duplicate sub-command \"show\"", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestConfigurationError(t *testing.T) {
	cause := fmt.Errorf("invalid YAML")
	err := NewConfigurationError("/path/to/grammar.yml", "failed to load grammar", cause)

	assert.Equal(t, "CONFIG_ERROR", err.Code())
	assert.Equal(t, "/path/to/grammar.yml", err.Path)
	assert.Contains(t, err.Error(), "failed to load grammar")
	assert.Contains(t, err.Error(), "invalid YAML")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestParseError(t *testing.T) {
	err := NewParseError("list", "--bogus", "unknown option")

	assert.Equal(t, "PARSE_ERROR", err.Code())
	assert.Equal(t, "list", err.Command)
	assert.Equal(t, "--bogus", err.Token)
	assert.Equal(t, "unknown option", err.Error())
}

func TestValidationError(t *testing.T) {
	cause := fmt.Errorf("required field missing")
	err := NewValidationError("commands/0/name", "invalid command", cause)

	assert.Equal(t, "VALIDATION_ERROR", err.Code())
	assert.Equal(t, "commands/0/name", err.Field)
	assert.Contains(t, err.Error(), "required field missing")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("grammar", "no grammar file found")

	assert.Equal(t, "NOT_FOUND", err.Code())
	assert.Equal(t, "grammar", err.Resource)
	assert.Equal(t, "no grammar file found", err.Error())
}

func TestErrorsAs(t *testing.T) {
	var wrapped error = fmt.Errorf("parse failed: %w", NewParseError("show", "x", "unexpected argument"))

	var perr *ParseError
	assert.True(t, errors.As(wrapped, &perr))
	assert.Equal(t, "show", perr.Command)

	var coded PromptkitError
	assert.True(t, errors.As(wrapped, &coded))
	assert.Equal(t, "PARSE_ERROR", coded.Code())
}
