// Package lexer splits a raw command line into classified, position-tagged
// tokens. Whitespace inside double quotes does not split a token, an
// unterminated quote runs to the end of the input, and words starting with a
// dash are classified as option flags. Scanning never fails.
package lexer

import (
	"iter"
	"slices"
	"strings"
)

// Kind classifies a token
type Kind int

const (
	Whitespace Kind = iota
	Word
	QuotedString
	OptionFlag
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case Word:
		return "word"
	case QuotedString:
		return "quoted"
	case OptionFlag:
		return "option"
	default:
		return "unknown"
	}
}

// Token is a slice of the input with its classification.
// Offset is the byte offset of Text in the scanned string.
type Token struct {
	Text   string
	Kind   Kind
	Offset int
}

// End returns the byte offset just past the token
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// IsOption reports whether the token looks like an option flag
func (t Token) IsOption() bool {
	return t.Kind == OptionFlag
}

// Value returns the token text with surrounding double quotes removed.
// Unterminated quoted strings only lose the opening quote.
func (t Token) Value() string {
	if t.Kind != QuotedString {
		return t.Text
	}
	v := strings.TrimPrefix(t.Text, `"`)
	return strings.TrimSuffix(v, `"`)
}

const doubleQuote = '"'

type state int

const (
	stateStart state = iota
	stateWhitespace
	stateQuoteOpening
	stateQuotedBody
	stateQuoteClosed
	stateBareWord
	// stateOptionQuote is the option sub-scan: inside a quote embedded in an
	// option-like word, whitespace does not end the token.
	stateOptionQuote
)

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// scanner holds the state of a single pass over one string
type scanner struct {
	text  string
	start int
	state state
}

// Scan returns a lazy sequence of tokens covering text from left to right.
// Every call rescans from the beginning, so the sequence can be ranged over
// again with identical results.
func Scan(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		s := &scanner{text: text}
		s.run(yield)
	}
}

// Tokenize collects Scan(text) into a slice
func Tokenize(text string) []Token {
	return slices.Collect(Scan(text))
}

// Fields returns the non-whitespace tokens of text
func Fields(text string) []Token {
	var fields []Token
	for tok := range Scan(text) {
		if tok.Kind != Whitespace {
			fields = append(fields, tok)
		}
	}
	return fields
}

func (s *scanner) run(yield func(Token) bool) {
	for i, r := range s.text {
		switch s.state {
		case stateStart:
			s.begin(i, r)

		case stateWhitespace:
			if isBlank(r) {
				continue
			}
			if !s.emit(i, yield) {
				return
			}
			s.begin(i, r)

		case stateQuoteOpening:
			if r == doubleQuote {
				s.state = stateQuoteClosed
			} else {
				s.state = stateQuotedBody
			}

		case stateQuotedBody:
			if r == doubleQuote {
				s.state = stateQuoteClosed
			}

		case stateQuoteClosed:
			if !s.emit(i, yield) {
				return
			}
			s.begin(i, r)

		case stateBareWord:
			switch {
			case isBlank(r):
				if !s.emit(i, yield) {
					return
				}
				s.begin(i, r)
			case r == doubleQuote && s.text[s.start] == '-':
				s.state = stateOptionQuote
			}

		case stateOptionQuote:
			if r == doubleQuote {
				s.state = stateBareWord
			}
		}
	}

	if s.start < len(s.text) {
		s.emit(len(s.text), yield)
	}
}

// begin starts a new token at byte offset i whose first rune is r
func (s *scanner) begin(i int, r rune) {
	s.start = i
	switch {
	case isBlank(r):
		s.state = stateWhitespace
	case r == doubleQuote:
		s.state = stateQuoteOpening
	default:
		s.state = stateBareWord
	}
}

// emit yields the buffered token ending at byte offset end
func (s *scanner) emit(end int, yield func(Token) bool) bool {
	tok := Token{
		Text:   s.text[s.start:end],
		Kind:   s.kind(),
		Offset: s.start,
	}
	s.start = end
	return yield(tok)
}

func (s *scanner) kind() Kind {
	switch s.state {
	case stateWhitespace:
		return Whitespace
	case stateQuoteOpening, stateQuotedBody, stateQuoteClosed:
		return QuotedString
	default:
		if s.text[s.start] == '-' {
			return OptionFlag
		}
		return Word
	}
}
