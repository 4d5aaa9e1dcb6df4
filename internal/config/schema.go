package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// commandNamePattern rejects whitespace and double quotes in names
const commandNamePattern = `^[^\s"]+$`

// JSONSchemaExtend restricts command names to single words
func (CommandSpec) JSONSchemaExtend(s *jsonschema.Schema) {
	if name, ok := s.Properties.Get("name"); ok {
		name.Pattern = commandNamePattern
	}
}

// JSONSchemaExtend requires every flag to start with a dash
func (OptionSpec) JSONSchemaExtend(s *jsonschema.Schema) {
	if flags, ok := s.Properties.Get("flags"); ok && flags.Items != nil {
		flags.Items.Pattern = "^-"
	}
}

var (
	schemaOnce sync.Once
	schemaJSON string
)

// GenerateSchema reflects the JSON Schema of grammar documents
func GenerateSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:                  true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&Grammar{})

	// Use draft-07 for IDE compatibility
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.Title = "promptkit grammar"
	schema.Description = "Command tree used for completion and parsing"
	return schema
}

// GetSchemaJSON returns the JSON Schema for grammar documents
func GetSchemaJSON() string {
	schemaOnce.Do(func() {
		data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
		if err != nil {
			panic(fmt.Sprintf("marshal grammar schema: %v", err))
		}
		schemaJSON = string(data)
	})
	return schemaJSON
}

// ValidateWithSchema validates a grammar document against the JSON Schema.
// The format is taken from the extension of path.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	data, err := decodeDocument(path, content)
	if err != nil {
		if _, unsupported := err.(unsupportedFormatError); unsupported {
			return nil, err
		}
		result.addError("syntax", err.Error())
		return result, nil
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if !validationResult.Valid() {
		for _, err := range validationResult.Errors() {
			result.addError(err.Field(), err.Description())
		}
	}

	return result, nil
}

type unsupportedFormatError string

func (e unsupportedFormatError) Error() string {
	return "unsupported file format: " + string(e)
}

// decodeDocument converts content into plain maps and slices
func decodeDocument(path string, content []byte) (any, error) {
	var data any

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("Invalid YAML syntax: %v", err)
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("Invalid JSON syntax: %v", err)
		}
	case ".toml":
		k := koanf.New(".")
		if err := k.Load(rawbytes.Provider(content), toml.Parser()); err != nil {
			return nil, fmt.Errorf("Invalid TOML syntax: %v", err)
		}
		data = k.Raw()
	default:
		return nil, unsupportedFormatError(ext)
	}

	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
