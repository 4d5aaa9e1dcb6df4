package nested

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/NikitaCOEUR/promptkit/internal/completion"
)

// WordCompleter completes the last word before the cursor from a fixed list
type WordCompleter struct {
	Words []string
	// Help provides per-word help text; nil means none
	Help *Help
	// MatchMiddle matches anywhere in a word instead of at its start
	MatchMiddle bool
	IgnoreCase  bool
}

// Complete implements completion.Completer
func (w *WordCompleter) Complete(text string, cursor int) iter.Seq[completion.Candidate] {
	return func(yield func(completion.Candidate) bool) {
		cursor = max(0, min(cursor, len(text)))
		word := lastWord(text[:cursor])
		replace := utf8.RuneCountInString(word)

		for _, candidate := range w.Words {
			if !w.matches(candidate, word) {
				continue
			}
			c := completion.Candidate{
				InsertText:        candidate,
				DisplayText:       candidate,
				HelpText:          w.Help.For(candidate),
				ReplaceFromOffset: replace,
				Kind:              completion.KindWord,
			}
			if !yield(c) {
				return
			}
		}
	}
}

func (w *WordCompleter) matches(candidate, word string) bool {
	if w.IgnoreCase {
		candidate = strings.ToLower(candidate)
		word = strings.ToLower(word)
	}
	if w.MatchMiddle {
		return strings.Contains(candidate, word)
	}
	return strings.HasPrefix(candidate, word)
}

// lastWord returns the run of non-blank characters ending the text
func lastWord(text string) string {
	i := strings.LastIndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return text
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	return text[i+size:]
}
