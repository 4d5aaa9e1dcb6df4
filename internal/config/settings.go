package config

import (
	"os"

	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SettingsFileName is the name of the settings file in the config directory
const SettingsFileName = "config.yml"

// Settings tune the interactive shell and the completers
type Settings struct {
	LogLevel     string `koanf:"log_level"`
	Prompt       string `koanf:"prompt"`
	HistoryFile  string `koanf:"history_file"`
	HistoryLimit int    `koanf:"history_limit"`
	// MatchMiddle makes nested dictionary words match by substring
	MatchMiddle   bool `koanf:"match_middle"`
	IgnoreCase    bool `koanf:"ignore_case"`
	MaxCandidates int  `koanf:"max_candidates"` // 0 means unlimited
}

// DefaultSettings returns the settings used when no file overrides them
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:     "warn",
		Prompt:       "> ",
		HistoryLimit: 500,
		MatchMiddle:  true,
	}
}

// LoadSettings reads the settings file at path, or at GetGlobalConfigPath
// when path is empty. A missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	if path == "" {
		p, err := GetGlobalConfigPath()
		if err != nil {
			return s, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load settings", err)
	}
	if err := k.Unmarshal("", s); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal settings", err)
	}
	if s.HistoryLimit < 0 {
		return nil, derrors.NewValidationError("history_limit", "history_limit must not be negative", nil)
	}
	return s, nil
}
