package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/promptkit/internal/render"
)

// TokenizeParams contains parameters for the Tokenize command
type TokenizeParams struct {
	Line  string
	Color bool // print the highlighted line instead of the token table
	Out   io.Writer
}

// Tokenize prints the tokens of a line
func Tokenize(params TokenizeParams) error {
	out := output(params.Out)
	if params.Color {
		_, _ = fmt.Fprintln(out, render.Tokens(params.Line))
		return nil
	}
	if table := render.TokenTable(params.Line); table != "" {
		_, _ = fmt.Fprintln(out, table)
	}
	return nil
}
