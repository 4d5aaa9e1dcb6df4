package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/promptkit/internal/render"
)

// TreeParams contains parameters for the Tree command
type TreeParams struct {
	GrammarPath string
	LogLevel    string
	Out         io.Writer
}

// Tree prints the command tree of the grammar
func Tree(params TreeParams) error {
	g, err := loadGrammar(params.GrammarPath, newLogger(params.LogLevel).With("tree"))
	if err != nil {
		return err
	}

	prog := g.spec.Prog
	if prog == "" {
		prog = GrammarBaseName
	}
	_, _ = fmt.Fprintln(output(params.Out), render.Tree(g.root, prog))
	return nil
}
