package completion

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/NikitaCOEUR/promptkit/internal/cmdtree"
	"github.com/NikitaCOEUR/promptkit/internal/lexer"
	"github.com/mattn/go-runewidth"
)

// Context is the state derived from one completion request
type Context struct {
	// Tokens holds every token of the text before the cursor, whitespace included
	Tokens []lexer.Token
	// Active is the node reached by following completed tokens that name children
	Active *cmdtree.Node
	// Args are the completed tokens after the last consumed command token
	Args []lexer.Token
	// Consumed holds the option flags already present in Args
	Consumed map[string]struct{}
	// Partial is the word under the cursor; empty when the text ends in whitespace
	Partial lexer.Token

	fields int
}

// NewContext tokenizes text up to cursor (a byte offset, clamped to the text)
// and descends root as far as the completed tokens allow.
func NewContext(root *cmdtree.Node, text string, cursor int) *Context {
	cursor = max(0, min(cursor, len(text)))
	text = text[:cursor]

	ctx := &Context{
		Tokens:   lexer.Tokenize(text),
		Active:   root,
		Consumed: make(map[string]struct{}),
		Partial:  lexer.Token{Kind: lexer.Word, Offset: len(text)},
	}

	var completed []lexer.Token
	for _, tok := range ctx.Tokens {
		if tok.Kind != lexer.Whitespace {
			completed = append(completed, tok)
		}
	}
	ctx.fields = len(completed)

	if n := len(ctx.Tokens); n > 0 && ctx.Tokens[n-1].Kind != lexer.Whitespace {
		ctx.Partial = completed[len(completed)-1]
		completed = completed[:len(completed)-1]
	}

	consumed := 0
	for i, tok := range completed {
		if tok.IsOption() {
			break
		}
		found := ctx.Active.FindChild(tok.Value(), false)
		if len(found) == 0 {
			break
		}
		ctx.Active = found[0]
		consumed = i + 1
	}
	ctx.Args = completed[consumed:]

	for _, tok := range ctx.Args {
		if tok.IsOption() {
			ctx.Consumed[flagName(tok.Text)] = struct{}{}
		}
	}

	return ctx
}

// flagName strips an inline "=value" from an option token
func flagName(text string) string {
	if name, _, ok := strings.Cut(text, "="); ok {
		return name
	}
	return text
}

// Empty reports whether the text held no words at all
func (c *Context) Empty() bool {
	return c.fields == 0
}

// IsCommandPosition reports whether the partial word may name a sub-command
// of the active node
func (c *Context) IsCommandPosition() bool {
	return len(c.Args) == 0 && !c.Partial.IsOption()
}

// PendingOption returns the option token right before the partial word when
// that option still expects its value
func (c *Context) PendingOption() (lexer.Token, bool) {
	if len(c.Args) == 0 {
		return lexer.Token{}, false
	}
	prev := c.Args[len(c.Args)-1]
	if !prev.IsOption() || strings.Contains(prev.Text, "=") {
		return lexer.Token{}, false
	}
	return prev, true
}

// IsConsumed reports whether any flag of opt was already given
func (c *Context) IsConsumed(opt *cmdtree.Option) bool {
	for _, flag := range opt.Flags {
		if _, ok := c.Consumed[flag]; ok {
			return true
		}
	}
	return false
}

func (c *Context) replaceLen() int {
	return utf8.RuneCountInString(c.Partial.Text)
}

// Resolver completes lines against a fixed command tree
type Resolver struct {
	root *cmdtree.Node
}

// NewResolver creates a resolver for root
func NewResolver(root *cmdtree.Node) *Resolver {
	return &Resolver{root: root}
}

// Complete implements Completer
func (r *Resolver) Complete(text string, cursor int) iter.Seq[Candidate] {
	return Resolve(r.root, text, cursor)
}

// Resolve returns the candidates for the word under the cursor. Sub-command
// candidates come first in child insertion order, followed by option flags
// in declaration order. Nothing is computed until the sequence is ranged
// over, and stopping early leaves no state behind.
func Resolve(root *cmdtree.Node, text string, cursor int) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		ctx := NewContext(root, text, cursor)
		if ctx.Empty() {
			return
		}

		if ctx.IsCommandPosition() {
			for _, child := range ctx.Active.FindChild(ctx.Partial.Value(), true) {
				c := Candidate{
					InsertText:        child.Name,
					DisplayText:       child.Name,
					HelpText:          cmdtree.HelpFor(child),
					ReplaceFromOffset: ctx.replaceLen(),
					Kind:              KindCommand,
				}
				if !yield(c) {
					return
				}
			}
		}

		if prev, ok := ctx.PendingOption(); ok {
			yield(valueHint(ctx, prev))
			return
		}

		for _, c := range optionCandidates(ctx) {
			if !yield(c) {
				return
			}
		}
	}
}

func valueHint(ctx *Context, prev lexer.Token) Candidate {
	c := Candidate{
		DisplayText:       "<value>",
		ReplaceFromOffset: ctx.replaceLen(),
		Kind:              KindValue,
	}
	if opt := ctx.Active.Option(prev.Text); opt != nil {
		c.HelpText = opt.Help
		if opt.Metavar != "" {
			c.DisplayText = "<" + opt.Metavar + ">"
		}
	}
	return c
}

// optionCandidates lists the option flags of the active node matching the
// partial word, skipping help flags and options already given. Labels are
// padded to the widest surviving flag so help texts line up.
func optionCandidates(ctx *Context) []Candidate {
	type entry struct {
		flag string
		help string
	}

	var entries []entry
	width := 0
	for _, m := range ctx.Active.ListOptions(ctx.Partial.Text) {
		if ctx.IsConsumed(m.Option) {
			continue
		}
		for _, flag := range m.Flags {
			if cmdtree.IsHelpFlag(flag) {
				continue
			}
			entries = append(entries, entry{flag: flag, help: m.Option.Help})
			width = max(width, runewidth.StringWidth(flag))
		}
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, Candidate{
			InsertText:        e.flag,
			DisplayText:       alignLabel(e.flag, e.help, width),
			HelpText:          e.help,
			ReplaceFromOffset: ctx.replaceLen(),
			Kind:              KindOption,
		})
	}
	return candidates
}

// alignLabel pads flag to width; help follows only when present
func alignLabel(flag, help string, width int) string {
	label := runewidth.FillRight(flag, width)
	if help == "" {
		return label
	}
	return label + "  " + help
}
