// Package cmdtree defines the static command grammar: a tree of commands,
// each declaring option flags and named sub-commands.
//
// A tree is built once before any parsing begins and is read-only afterwards,
// except for the per-node error flag toggled by a full-line parse. Lookups
// never mutate the tree, so completion requests may run while no parse is in
// progress without further synchronization.
package cmdtree

import (
	"iter"
	"slices"
	"strings"

	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// HelpFlags are the built-in help flags, never offered as completions
var HelpFlags = []string{"-h", "--help"}

// IsHelpFlag reports whether flag is one of HelpFlags
func IsHelpFlag(flag string) bool {
	return slices.Contains(HelpFlags, flag)
}

// Option declares one option of a command
type Option struct {
	Flags   []string
	Help    string
	Metavar string // name of the option value, empty for switches
}

// TakesValue reports whether the option consumes the following token
func (o *Option) TakesValue() bool {
	return o.Metavar != ""
}

// Name returns the key the option's value is stored under: the first long
// flag without its dashes, or the first flag when none is long
func (o *Option) Name() string {
	for _, flag := range o.Flags {
		if strings.HasPrefix(flag, "--") && len(flag) > 2 {
			return flag[2:]
		}
	}
	if len(o.Flags) == 0 {
		return ""
	}
	return strings.TrimLeft(o.Flags[0], "-")
}

// HasFlag reports whether flag is one of the option's flag strings
func (o *Option) HasFlag(flag string) bool {
	return slices.Contains(o.Flags, flag)
}

// Node is a command in the grammar. The root node has no name.
type Node struct {
	Name    string
	Help    string
	Options []*Option

	parent    *Node
	children  *orderedmap.OrderedMap[string, *Node]
	errorFlag bool
}

// New creates a node with no options and no children
func New(name, help string) *Node {
	return &Node{
		Name:     name,
		Help:     help,
		children: orderedmap.New[string, *Node](),
	}
}

// Parent returns the node this one was added to, nil for a root
func (n *Node) Parent() *Node {
	return n.parent
}

// Path returns the space-separated command names from the root to n
func (n *Node) Path() string {
	var names []string
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Name != "" {
			names = append(names, cur.Name)
		}
	}
	slices.Reverse(names)
	return strings.Join(names, " ")
}

// AddOption declares an option on n.
// Flags must start with '-' and must not already be declared on n.
func (n *Node) AddOption(opt *Option) error {
	if len(opt.Flags) == 0 {
		return derrors.NewGrammarError(n.Path(), "option declares no flags")
	}
	for _, flag := range opt.Flags {
		if !strings.HasPrefix(flag, "-") {
			return derrors.NewGrammarError(n.Path(), "option flag "+flag+" must start with '-'")
		}
		if n.Option(flag) != nil {
			return derrors.NewGrammarError(n.Path(), "duplicate option flag "+flag)
		}
	}
	n.Options = append(n.Options, opt)
	return nil
}

// AddCommand attaches child under n. Child names are unique per node.
func (n *Node) AddCommand(child *Node) error {
	if child.Name == "" {
		return derrors.NewGrammarError(n.Path(), "sub-command name is empty")
	}
	if strings.ContainsAny(child.Name, " \t\"") {
		return derrors.NewGrammarError(n.Path(), "sub-command name "+child.Name+" contains whitespace or quotes")
	}
	if n.children == nil {
		n.children = orderedmap.New[string, *Node]()
	}
	if _, exists := n.children.Get(child.Name); exists {
		return derrors.NewGrammarError(n.Path(), "duplicate sub-command "+child.Name)
	}
	child.parent = n
	n.children.Set(child.Name, child)
	return nil
}

// Option returns the option declaring flag, or nil
func (n *Node) Option(flag string) *Option {
	for _, opt := range n.Options {
		if opt.HasFlag(flag) {
			return opt
		}
	}
	return nil
}

// Len returns the number of direct children
func (n *Node) Len() int {
	if n.children == nil {
		return 0
	}
	return n.children.Len()
}

// Children iterates direct children in insertion order
func (n *Node) Children() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if n.children == nil {
			return
		}
		for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Child returns the child named exactly name, or nil
func (n *Node) Child(name string) *Node {
	if n.children == nil {
		return nil
	}
	child, _ := n.children.Get(name)
	return child
}

// Match returns, in insertion order, every child whose name contains sub.
// Matching is by substring, not prefix: "lis" matches both "list" and "enlist".
func (n *Node) Match(sub string) []*Node {
	var matches []*Node
	for name, child := range n.Children() {
		if strings.Contains(name, sub) {
			matches = append(matches, child)
		}
	}
	return matches
}

// FindChild looks up children of n by name. In exact mode the result holds
// at most one node; in fuzzy mode it holds every substring match.
func (n *Node) FindChild(name string, fuzzy bool) []*Node {
	if fuzzy {
		return n.Match(name)
	}
	if child := n.Child(name); child != nil {
		return []*Node{child}
	}
	return nil
}

// OptionMatch pairs an option with the flag strings that matched a query
type OptionMatch struct {
	Option *Option
	Flags  []string
}

// ListOptions returns one entry per declared option, in declaration order,
// holding the flags that match partial. An empty or bare-dash partial
// matches by containment, anything else by prefix. Entries whose Flags are
// empty are kept so callers see the full declaration.
func (n *Node) ListOptions(partial string) []OptionMatch {
	matches := make([]OptionMatch, 0, len(n.Options))
	for _, opt := range n.Options {
		var flags []string
		for _, flag := range opt.Flags {
			if flagMatches(flag, partial) {
				flags = append(flags, flag)
			}
		}
		matches = append(matches, OptionMatch{Option: opt, Flags: flags})
	}
	return matches
}

func flagMatches(flag, partial string) bool {
	if partial == "" || partial == "-" {
		return strings.Contains(flag, partial)
	}
	return strings.HasPrefix(flag, partial)
}

// HelpFor returns the help text of n; an empty string means none was declared
func HelpFor(n *Node) string {
	if n == nil {
		return ""
	}
	return n.Help
}

// Walk visits n and every descendant depth-first, parents before children.
// Returning false from fn skips that node's subtree.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}
