package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/promptkit/internal/parser"
	"github.com/NikitaCOEUR/promptkit/internal/render"
)

// ParseParams contains parameters for the Parse command
type ParseParams struct {
	GrammarPath string
	LogLevel    string
	Line        string
	Out         io.Writer
}

// Parse parses a full line and prints the resulting invocation. A line
// asking for help prints the usage of its command. Any parse failure is
// returned so the process exits non-zero.
func Parse(params ParseParams) error {
	log := newLogger(params.LogLevel)
	g, err := loadGrammar(params.GrammarPath, log.With("parse"))
	if err != nil {
		return err
	}

	inv, err := parser.NewDriver(g.root, log).Parse(params.Line)
	if err != nil {
		return err
	}

	out := output(params.Out)
	if inv.Help {
		_, _ = fmt.Fprintln(out, render.Usage(inv.Command, g.spec.Prog))
		return nil
	}
	_, _ = fmt.Fprintln(out, describeInvocation(inv))
	return nil
}
