// Package config handles loading and parsing of promptkit grammar and
// settings files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// SupportedExtensions lists the grammar file formats, in order of preference
var SupportedExtensions = []string{".yml", ".yaml", ".toml", ".json"}

// OptionSpec declares one option of a command
type OptionSpec struct {
	Flags   []string `koanf:"flags" json:"flags" jsonschema:"required,minItems=1,description=Flag strings such as -f and --file"`
	Help    string   `koanf:"help" json:"help,omitempty" jsonschema:"description=Help text shown next to the flag"`
	Metavar string   `koanf:"metavar" json:"metavar,omitempty" jsonschema:"description=Name of the option value; options without one are switches"`
}

// CommandSpec declares a sub-command and everything below it
type CommandSpec struct {
	Name     string        `koanf:"name" json:"name" jsonschema:"required,minLength=1,description=Command name as typed"`
	Help     string        `koanf:"help" json:"help,omitempty" jsonschema:"description=Help text (Go template with sprig functions)"`
	Options  []OptionSpec  `koanf:"options" json:"options,omitempty" jsonschema:"description=Options accepted by this command"`
	Commands []CommandSpec `koanf:"commands" json:"commands,omitempty" jsonschema:"description=Nested sub-commands"`
}

// Grammar is a command tree document
type Grammar struct {
	Prog     string        `koanf:"prog" json:"prog,omitempty" jsonschema:"description=Program name used in prompts and help templates"`
	Help     string        `koanf:"help" json:"help,omitempty" jsonschema:"description=Help text of the root command"`
	Options  []OptionSpec  `koanf:"options" json:"options,omitempty" jsonschema:"description=Options accepted before any sub-command"`
	Commands []CommandSpec `koanf:"commands" json:"commands,omitempty" jsonschema:"description=Top-level sub-commands"`
}

// parserFor returns the koanf parser matching a file extension
func parserFor(ext string) (koanf.Parser, error) {
	switch strings.ToLower(ext) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// cachedGrammar stores a parsed grammar with the file state it came from
type cachedGrammar struct {
	grammar *Grammar
	modTime time.Time
	size    int64
}

// Loader loads grammar files, reusing earlier results while a file is unchanged
type Loader struct {
	parsedCache map[string]*cachedGrammar
}

// New creates a new grammar loader
func New() *Loader {
	return &Loader{
		parsedCache: make(map[string]*cachedGrammar),
	}
}

// Load reads and parses a grammar file
func (l *Loader) Load(path string) (*Grammar, error) {
	fileInfo, statErr := os.Stat(path)
	if statErr != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load grammar", statErr)
	}

	if cached, exists := l.parsedCache[path]; exists {
		if !fileInfo.ModTime().After(cached.modTime) && fileInfo.Size() == cached.size {
			return cached.grammar, nil
		}
		delete(l.parsedCache, path)
	}

	parser, err := parserFor(filepath.Ext(path))
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load grammar", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load grammar", err)
	}

	g, err := unmarshalGrammar(k)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal grammar", err)
	}

	l.parsedCache[path] = &cachedGrammar{
		grammar: g,
		modTime: fileInfo.ModTime(),
		size:    fileInfo.Size(),
	}
	return g, nil
}

// LoadGrammar reads a grammar file without caching
func LoadGrammar(path string) (*Grammar, error) {
	return New().Load(path)
}

// ParseGrammar parses an in-memory grammar document. format is a file
// extension such as ".yml".
func ParseGrammar(data []byte, format string) (*Grammar, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, derrors.NewConfigurationError("", "failed to parse grammar", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, derrors.NewConfigurationError("", "failed to parse grammar", err)
	}

	g, err := unmarshalGrammar(k)
	if err != nil {
		return nil, derrors.NewConfigurationError("", "failed to unmarshal grammar", err)
	}
	return g, nil
}

func unmarshalGrammar(k *koanf.Koanf) (*Grammar, error) {
	g := &Grammar{}
	if err := k.Unmarshal("", g); err != nil {
		return nil, err
	}
	return g, nil
}

// GetGlobalConfigPath returns the path to the settings file
func GetGlobalConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "promptkit", SettingsFileName), nil
}
