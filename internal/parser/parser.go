// Package parser validates a complete command line against a command tree.
//
// Parse failures are reported twice: as a returned *derrors.ParseError and
// as the error flag of the node where parsing stopped, so a caller holding
// only the root can tell whether the last attempt failed.
package parser

import (
	"strings"

	"github.com/NikitaCOEUR/promptkit/internal/cmdtree"
	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	"github.com/NikitaCOEUR/promptkit/internal/lexer"
)

// Invocation is the result of a successful parse
type Invocation struct {
	// Command is the deepest sub-command named on the line
	Command *cmdtree.Node
	// Options maps Option.Name() to its value; switches hold "true"
	Options map[string]string
	// Args are the positional arguments, unquoted
	Args []string
	// Help is set when -h or --help was given; parsing stops there
	Help bool
}

// Path returns the command path of the invocation
func (inv *Invocation) Path() string {
	return inv.Command.Path()
}

// Has reports whether the option called name was given
func (inv *Invocation) Has(name string) bool {
	_, ok := inv.Options[name]
	return ok
}

// Parse splits line into tokens and matches them against root. Options are
// looked up on the current command only; an option with a metavar takes
// the next token (or an inline "=value") as its value.
func Parse(root *cmdtree.Node, line string) (*Invocation, error) {
	inv := &Invocation{
		Command: root,
		Options: make(map[string]string),
	}

	tokens := lexer.Fields(line)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		node := inv.Command

		if tok.IsOption() {
			flag, inline, hasInline := strings.Cut(tok.Text, "=")
			if cmdtree.IsHelpFlag(flag) {
				inv.Help = true
				return inv, nil
			}

			opt := node.Option(flag)
			if opt == nil {
				return nil, fail(node, tok.Text, "unrecognized option "+flag)
			}

			switch {
			case !opt.TakesValue() && hasInline:
				return nil, fail(node, tok.Text, "option "+flag+" does not take a value")
			case !opt.TakesValue():
				inv.Options[opt.Name()] = "true"
			case hasInline:
				inv.Options[opt.Name()] = unquote(inline)
			case i+1 < len(tokens) && !tokens[i+1].IsOption():
				i++
				inv.Options[opt.Name()] = tokens[i].Value()
			default:
				return nil, fail(node, tok.Text, "option "+flag+" expects a value "+metavar(opt))
			}
			continue
		}

		word := tok.Value()
		if len(inv.Args) == 0 {
			if found := node.FindChild(word, false); len(found) > 0 {
				inv.Command = found[0]
				continue
			}
			if node.Len() > 0 {
				return nil, fail(node, tok.Text, "invalid choice "+word)
			}
		}
		inv.Args = append(inv.Args, word)
	}

	return inv, nil
}

func fail(node *cmdtree.Node, token, message string) error {
	node.SetError()
	return derrors.NewParseError(node.Path(), token, message)
}

func metavar(opt *cmdtree.Option) string {
	return "<" + opt.Metavar + ">"
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
