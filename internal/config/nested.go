package config

import (
	_ "embed"
	"os"

	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	"github.com/NikitaCOEUR/promptkit/internal/nested"
)

//go:embed demo_words.yml
var demoWords []byte

// LoadNested reads a nested dictionary document
func LoadNested(path string) (*nested.SubTree, *nested.Help, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, derrors.NewConfigurationError(path, "failed to read nested dictionary", err)
	}

	words, help, err := nested.Parse(data)
	if err != nil {
		return nil, nil, derrors.NewConfigurationError(path, "failed to parse nested dictionary", err)
	}
	return words, help, nil
}

// DemoWords returns the built-in example nested dictionary
func DemoWords() (*nested.SubTree, *nested.Help, error) {
	return nested.Parse(demoWords)
}

// NestedOptions maps settings onto nested completer options
func (s *Settings) NestedOptions() nested.Options {
	return nested.Options{
		MatchMiddle: s.MatchMiddle,
		IgnoreCase:  s.IgnoreCase,
	}
}
