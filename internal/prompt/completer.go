// Package prompt connects completers and the parse driver to an
// interactive readline session.
package prompt

import (
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/NikitaCOEUR/promptkit/internal/completion"
	"github.com/NikitaCOEUR/promptkit/internal/logger"
	"github.com/NikitaCOEUR/promptkit/internal/render"
)

// Completer adapts a completion.Completer to readline's AutoCompleter.
// A single candidate is completed inline; several candidates are listed on
// Out and only their common prefix is inserted.
type Completer struct {
	source completion.Completer
	limit  int
	log    *logger.Logger

	// Out receives candidate lists. Nil discards them.
	Out io.Writer
}

// NewCompleter wraps source. limit caps the number of candidates pulled per
// request, 0 meaning no cap.
func NewCompleter(source completion.Completer, limit int, log *logger.Logger) *Completer {
	if log == nil {
		log = logger.Discard()
	}
	return &Completer{
		source: source,
		limit:  limit,
		log:    log.With("prompt"),
	}
}

// Candidates returns the candidates for the text before pos
func (c *Completer) Candidates(line []rune, pos int) []completion.Candidate {
	pos = max(0, min(pos, len(line)))
	text := string(line[:pos])
	return slices.Collect(completion.Limit(c.source.Complete(text, len(text)), c.limit))
}

// Do implements readline.AutoCompleter
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	pos = max(0, min(pos, len(line)))
	cands := c.Candidates(line, pos)

	var words []completion.Candidate
	var hints []completion.Candidate
	for _, cand := range cands {
		if cand.ExpectsValue() {
			hints = append(hints, cand)
			continue
		}
		words = append(words, cand)
	}

	c.log.Debug().
		Str("line", string(line[:pos])).
		Int("candidates", len(words)).
		Int("hints", len(hints)).
		Msg("Completion request")

	if len(words) == 0 {
		if len(hints) > 0 {
			c.writeHelp(hints)
		}
		return nil, 0
	}

	replace := min(words[0].ReplaceFromOffset, pos)
	partial := string(line[pos-replace : pos])

	var prefixed []string
	for _, w := range words {
		if strings.HasPrefix(w.InsertText, partial) {
			prefixed = append(prefixed, w.InsertText)
		}
	}

	if len(words) == 1 && len(prefixed) == 1 {
		suffix := prefixed[0][len(partial):]
		return [][]rune{[]rune(suffix + " ")}, replace
	}

	c.writeHelp(words)

	suffix := strings.TrimPrefix(CommonPrefix(prefixed), partial)
	if suffix == "" {
		return nil, 0
	}
	return [][]rune{[]rune(suffix)}, replace
}

// writeHelp prints the candidate list in one write so readline refreshes
// the prompt once
func (c *Completer) writeHelp(cands []completion.Candidate) {
	if c.Out == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString("Possible completions:\n")
	for _, line := range strings.Split(render.Candidates(cands), "\n") {
		sb.WriteString("  " + line + "\n")
	}
	_, _ = io.WriteString(c.Out, sb.String())
}

// CommonPrefix returns the longest shared prefix among the given strings
func CommonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := items[0]
	for _, s := range items[1:] {
		for !strings.HasPrefix(s, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
