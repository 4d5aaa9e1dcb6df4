// Package nested completes words from a tree described as nested mappings
// of word to sub-mapping. It has no notion of options: each level is a
// plain list of words, and typing a known word followed by a space moves
// completion one level down.
package nested

import (
	"iter"
	"strings"
	"unicode"

	"github.com/NikitaCOEUR/promptkit/internal/completion"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Options control word matching at every level of a Completer
type Options struct {
	MatchMiddle bool
	IgnoreCase  bool
}

// DefaultOptions match words by substring, case-sensitively
var DefaultOptions = Options{MatchMiddle: true}

// Completer is one level of a nested dictionary
type Completer struct {
	// a nil sub-completer marks a leaf
	words *orderedmap.OrderedMap[string, *Completer]
	help  *Help
	opts  Options
}

// FromNested resolves data into a Completer tree. help mirrors the shape of
// data and may be nil or partial.
func FromNested(data *SubTree, help *Help, opts Options) *Completer {
	c := &Completer{
		words: orderedmap.New[string, *Completer](),
		help:  help,
		opts:  opts,
	}
	for word, value := range data.Entries() {
		switch v := value.(type) {
		case *SubTree:
			c.words.Set(word, FromNested(v, help.Sub(word), opts))
		case LeafSet:
			set := NewSubTree()
			for _, item := range v {
				set.Set(item, Leaf{})
			}
			c.words.Set(word, FromNested(set, help.Sub(word), opts))
		default:
			c.words.Set(word, nil)
		}
	}
	return c
}

// Words lists the words of this level in insertion order
func (c *Completer) Words() []string {
	out := make([]string, 0, c.words.Len())
	for pair := c.words.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Sub returns the completer below word, nil for leaves and unknown words
func (c *Completer) Sub(word string) *Completer {
	sub, _ := c.words.Get(word)
	return sub
}

// Complete implements completion.Completer. When the text before the cursor
// holds a finished first word that names a sub-level, completion continues
// there with the rest of the text; text starting with '-' always stays at
// this level. Otherwise the last word is matched against this level.
func (c *Completer) Complete(text string, cursor int) iter.Seq[completion.Candidate] {
	return func(yield func(completion.Candidate) bool) {
		cursor = max(0, min(cursor, len(text)))
		before := strings.TrimLeftFunc(text[:cursor], unicode.IsSpace)

		if strings.IndexFunc(before, unicode.IsSpace) >= 0 && !strings.HasPrefix(before, "-") {
			first := strings.FieldsFunc(before, unicode.IsSpace)[0]
			sub := c.Sub(first)
			if sub == nil {
				return
			}
			rest := strings.TrimLeftFunc(before[len(first):], unicode.IsSpace)
			for cand := range sub.Complete(rest, len(rest)) {
				if !yield(cand) {
					return
				}
			}
			return
		}

		words := &WordCompleter{
			Words:       c.Words(),
			Help:        c.help,
			MatchMiddle: c.opts.MatchMiddle,
			IgnoreCase:  c.opts.IgnoreCase,
		}
		for cand := range words.Complete(before, len(before)) {
			if !yield(cand) {
				return
			}
		}
	}
}
