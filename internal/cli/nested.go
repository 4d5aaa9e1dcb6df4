package cli

import (
	"io"
	"slices"

	"github.com/NikitaCOEUR/promptkit/internal/completion"
	"github.com/NikitaCOEUR/promptkit/internal/config"
	"github.com/NikitaCOEUR/promptkit/internal/nested"
)

// NestedParams contains parameters for the Nested command
type NestedParams struct {
	WordsPath    string // empty means the embedded demo words
	SettingsPath string
	LogLevel     string
	Line         string
	Display      bool
	Out          io.Writer
}

// Nested prints the nested dictionary completions for a line
func Nested(params NestedParams) error {
	log := newLogger(params.LogLevel).With("nested")

	settings, err := config.LoadSettings(params.SettingsPath)
	if err != nil {
		return err
	}

	completer, err := loadNested(params.WordsPath, settings)
	if err != nil {
		return err
	}

	cands := slices.Collect(completion.Limit(
		completer.Complete(params.Line, len(params.Line)),
		settings.MaxCandidates,
	))

	log.Debug().
		Str("line", params.Line).
		Strs("words", completer.Words()).
		Int("candidates", len(cands)).
		Msg("Nested completion resolved")

	writeCandidates(output(params.Out), cands, params.Display)
	return nil
}

func loadNested(path string, settings *config.Settings) (*nested.Completer, error) {
	var words *nested.SubTree
	var help *nested.Help
	var err error
	if path == "" {
		words, help, err = config.DemoWords()
	} else {
		words, help, err = config.LoadNested(path)
	}
	if err != nil {
		return nil, err
	}
	return nested.FromNested(words, help, settings.NestedOptions()), nil
}
