// Package completion resolves a partially typed command line against a
// command tree and produces completion candidates for the word under the
// cursor.
package completion

import (
	"iter"
)

// Kind tells what a candidate completes
type Kind int

const (
	// KindCommand completes a sub-command name
	KindCommand Kind = iota
	// KindOption completes an option flag
	KindOption
	// KindValue is a hint that an option value is expected; it carries no
	// text to insert
	KindValue
	// KindWord completes a plain word from a nested dictionary
	KindWord
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindOption:
		return "option"
	case KindValue:
		return "value"
	case KindWord:
		return "word"
	default:
		return "unknown"
	}
}

// Candidate is one proposed completion
type Candidate struct {
	InsertText  string // text that replaces the partial word
	DisplayText string // label shown in a completion menu
	HelpText    string // optional description
	// ReplaceFromOffset is the number of trailing characters (runes) of the
	// input the candidate overwrites when accepted
	ReplaceFromOffset int
	Kind              Kind
}

// ExpectsValue reports whether the candidate is the option-value hint
func (c Candidate) ExpectsValue() bool {
	return c.Kind == KindValue
}

// Completer produces candidates for the text before the cursor
type Completer interface {
	Complete(text string, cursor int) iter.Seq[Candidate]
}

// Limit stops seq after n candidates; n <= 0 means no limit
func Limit(seq iter.Seq[Candidate], n int) iter.Seq[Candidate] {
	if n <= 0 {
		return seq
	}
	return func(yield func(Candidate) bool) {
		count := 0
		for c := range seq {
			if !yield(c) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
