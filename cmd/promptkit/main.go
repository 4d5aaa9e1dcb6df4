// Package main is the entry point for the promptkit CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	pkcli "github.com/NikitaCOEUR/promptkit/internal/cli"
	"github.com/NikitaCOEUR/promptkit/internal/trace"
	"github.com/NikitaCOEUR/promptkit/pkg/version"
	"github.com/urfave/cli/v3"
)

// lineArgs joins the positional arguments into one line. An empty last
// argument keeps its separating space, so `complete list ""` completes
// after "list ".
func lineArgs(cmd *cli.Command) string {
	return strings.Join(cmd.Args().Slice(), " ")
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  "promptkit",
		Usage:                 "Command-line completion engine for nested command grammars",
		Version:               version.String(),
		EnableShellCompletion: true,
		Writer:                stdout,
		ErrWriter:             stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("PROMPTKIT_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "grammar",
				Aliases: []string{"g"},
				Usage:   "Grammar file (.yml, .yaml, .toml, .json); the built-in demo when unset",
				Sources: cli.EnvVars("PROMPTKIT_GRAMMAR"),
			},
			&cli.StringFlag{
				Name:    "settings",
				Usage:   "Settings file (default $XDG_CONFIG_HOME/promptkit/config.yml)",
				Sources: cli.EnvVars("PROMPTKIT_SETTINGS"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Print the completions for a partial line",
				ArgsUsage: "[--] <line...>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "cursor",
						Value: -1,
						Usage: "Cursor byte offset (end of line when negative)",
					},
					&cli.BoolFlag{
						Name:  "display",
						Usage: "Print the aligned candidate list",
					},
					&cli.BoolFlag{
						Name:  "timing",
						Usage: "Print timings to stderr",
					},
					&cli.IntFlag{
						Name:  "max",
						Usage: "Maximum number of candidates (0 for no limit)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pkcli.Complete(pkcli.CompleteParams{
						GrammarPath:   cmd.String("grammar"),
						LogLevel:      cmd.String("log-level"),
						Line:          lineArgs(cmd),
						Cursor:        int(cmd.Int("cursor")),
						Display:       cmd.Bool("display"),
						Timing:        cmd.Bool("timing"),
						MaxCandidates: int(cmd.Int("max")),
						Out:           stdout,
						Err:           stderr,
					})
				},
			},
			{
				Name:      "tokenize",
				Usage:     "Print the tokens of a line",
				ArgsUsage: "[--] <line...>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "color",
						Usage: "Print the line highlighted instead of the token table",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pkcli.Tokenize(pkcli.TokenizeParams{
						Line:  lineArgs(cmd),
						Color: cmd.Bool("color"),
						Out:   stdout,
					})
				},
			},
			{
				Name:  "tree",
				Usage: "Print the command tree of the grammar",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pkcli.Tree(pkcli.TreeParams{
						GrammarPath: cmd.String("grammar"),
						LogLevel:    cmd.String("log-level"),
						Out:         stdout,
					})
				},
			},
			{
				Name:      "parse",
				Usage:     "Parse a full line and print the invocation",
				ArgsUsage: "[--] <line...>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pkcli.Parse(pkcli.ParseParams{
						GrammarPath: cmd.String("grammar"),
						LogLevel:    cmd.String("log-level"),
						Line:        lineArgs(cmd),
						Out:         stdout,
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a grammar file",
				ArgsUsage: "[grammar-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						path = cmd.String("grammar")
					}
					return pkcli.Validate(pkcli.ValidateParams{
						Path: path,
						Out:  stdout,
					})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for grammar files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return pkcli.Schema(pkcli.SchemaParams{
						OutputPath: outputPath,
						Out:        stdout,
					})
				},
			},
			{
				Name:      "nested",
				Usage:     "Print the nested dictionary completions for a partial line",
				ArgsUsage: "[--] <line...>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "words",
						Usage: "Nested words file; the built-in demo when unset",
					},
					&cli.BoolFlag{
						Name:  "display",
						Usage: "Print the aligned candidate list",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pkcli.Nested(pkcli.NestedParams{
						WordsPath:    cmd.String("words"),
						SettingsPath: cmd.String("settings"),
						LogLevel:     cmd.String("log-level"),
						Line:         lineArgs(cmd),
						Display:      cmd.Bool("display"),
						Out:          stdout,
					})
				},
			},
			{
				Name:  "shell",
				Usage: "Start an interactive shell over the grammar",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					level := ""
					if cmd.IsSet("log-level") {
						level = cmd.String("log-level")
					}
					return pkcli.Shell(ctx, pkcli.ShellParams{
						GrammarPath:  cmd.String("grammar"),
						SettingsPath: cmd.String("settings"),
						LogLevel:     level,
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show the grammar, settings and history in use",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return pkcli.Status(pkcli.StatusParams{
						GrammarPath:  cmd.String("grammar"),
						SettingsPath: cmd.String("settings"),
						Out:          stdout,
					})
				},
			},
		},
	}
}

func main() {
	stop := trace.Init()

	err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
