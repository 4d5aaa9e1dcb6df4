package cli

import (
	"context"
	"fmt"
	"io"

		"github.com/NikitaCOEUR/promptkit/internal/config"
	"github.com/NikitaCOEUR/promptkit/internal/logger"
	"github.com/NikitaCOEUR/promptkit/internal/parser"
	"github.com/NikitaCOEUR/promptkit/internal/prompt"
	"github.com/NikitaCOEUR/promptkit/internal/render"
)

// ShellParams contains parameters for the Shell command
type ShellParams struct {
	GrammarPath  string
	SettingsPath string
	LogLevel     string // overrides the settings file when set
}

// Shell runs the interactive readline loop over the grammar
func Shell(ctx context.Context, params ShellParams) error {
	settings, err := config.LoadSettings(params.SettingsPath)
	if err != nil {
		return err
	}

	level := params.LogLevel
	if level == "" {
		level = settings.LogLevel
	}
	log := newLogger(level)

	src, err := newGrammarSource(params.GrammarPath, log.With("shell"))
	if err != nil {
		return err
	}

	completer := prompt.NewCompleter(src, settings.MaxCandidates, log)
	driver := parser.NewDriver(src.Grammar().root, log)

	sh := prompt.NewShell(prompt.Config{
		Prompt:       settings.Prompt,
		HistoryFile:  settings.HistoryFile,
		HistoryLimit: settings.HistoryLimit,
		BeforeLine:   reloader(src, driver),
	}, completer, driver, log)

	bindHandlers(driver, src.Prog, sh.Stdout, log)

	return sh.Run(ctx)
}

// reloader returns the per-line hook that picks up grammar edits and points
// driver at the rebuilt tree
func reloader(src *grammarSource, driver *parser.Driver) func() error {
	return func() error {
		changed, err := src.Refresh()
		if changed {
			driver.SetRoot(src.Grammar().root)
		}
		return err
	}
}

// bindHandlers installs the shell's built-in actions: exit leaves the
// loop, a help flag prints the command usage, anything else prints the
// parsed invocation. prog and out are looked up on every call: a reload may
// rename the program and the shell swaps its writer once readline starts.
func bindHandlers(driver *parser.Driver, prog func() string, out func() io.Writer, log *logger.Logger) {
	driver.Handle("exit", func(inv *parser.Invocation) error {
		if inv.Help {
			_, _ = fmt.Fprintln(out(), render.Usage(inv.Command, prog()))
			return nil
		}
		return prompt.ErrExit
	})

	driver.HandleDefault(func(inv *parser.Invocation) error {
		if inv.Help {
			_, _ = fmt.Fprintln(out(), render.Usage(inv.Command, prog()))
			return nil
		}
		log.Debug().Str("command", inv.Path()).Msg("Running command")
		_, _ = fmt.Fprintln(out(), describeInvocation(inv))
		return nil
	})
}
