// Package derrors provides custom error types for promptkit.
// Each error carries a stable code so callers and the CLI can react to
// failures without matching on message text.
package derrors

import (
	"fmt"
)

// PromptkitError is the base interface for all promptkit errors
type PromptkitError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all promptkit errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// GrammarError represents an invalid command tree declaration
type GrammarError struct {
	baseError
	Command string
}

// NewGrammarError creates a new grammar error for the given command path
func NewGrammarError(command string, message string) *GrammarError {
	return &GrammarError{
		baseError: baseError{
			code:    "GRAMMAR_ERROR",
			message: message,
		},
		Command: command,
	}
}

// ConfigurationError represents errors loading grammar or settings files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ParseError represents a failed full-line parse.
// Command is the path of the node where parsing failed, Token the offending input.
type ParseError struct {
	baseError
	Command string
	Token   string
}

// NewParseError creates a new parse error
func NewParseError(command, token, message string) *ParseError {
	return &ParseError{
		baseError: baseError{
			code:    "PARSE_ERROR",
			message: message,
		},
		Command: command,
		Token:   token,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
		},
		Resource: resource,
	}
}
