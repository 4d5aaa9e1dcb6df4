package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/NikitaCOEUR/promptkit/internal/completion"
	"github.com/NikitaCOEUR/promptkit/internal/lexer"
	"github.com/NikitaCOEUR/promptkit/internal/timing"
	"github.com/NikitaCOEUR/promptkit/internal/trace"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	GrammarPath   string
	LogLevel      string
	Line          string
	Cursor        int  // byte offset; negative means end of line
	Display       bool // aligned, styled output
	Timing        bool // print a timing summary to Err
	MaxCandidates int  // 0 means unlimited
	Out           io.Writer
	Err           io.Writer
}

// Complete prints the candidates for the word under the cursor
func Complete(params CompleteParams) error {
	ctx := context.Background()
	log := newLogger(params.LogLevel).With("complete")
	timer := timing.NewTimer()

	var g *grammar
	var err error
	trace.WithRegion(ctx, "loadGrammar", func() {
		g, err = loadGrammar(params.GrammarPath, log)
	})
	if err != nil {
		return err
	}
	timer.Mark("load")

	cursor := params.Cursor
	if cursor < 0 || cursor > len(params.Line) {
		cursor = len(params.Line)
	}

	var cands []completion.Candidate
	timer.Time("resolve", func() {
		end := trace.Region(ctx, "resolve")
		defer end()
		cands = slices.Collect(completion.Limit(
			completion.Resolve(g.root, params.Line, cursor),
			params.MaxCandidates,
		))
	})

	// Tokens are only scanned for the debug line
	if log.Enabled("debug") {
		var tokens []lexer.Token
		timer.Time("tokenize", func() {
			tokens = lexer.Tokenize(params.Line[:cursor])
		})
		log.Debug().
			Str("line", params.Line).
			Int("cursor", cursor).
			Int("tokens", len(tokens)).
			Int("candidates", len(cands)).
			Msg("Completion resolved")
	}

	writeCandidates(output(params.Out), cands, params.Display)

	if params.Timing {
		errOut := params.Err
		if errOut == nil {
			errOut = os.Stderr
		}
		_, _ = fmt.Fprintln(errOut, timer.Summary())
	}
	return nil
}
