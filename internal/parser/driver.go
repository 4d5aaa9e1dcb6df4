package parser

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/promptkit/internal/cmdtree"
	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	"github.com/NikitaCOEUR/promptkit/internal/logger"
)

// Handler runs the action bound to a command path
type Handler func(inv *Invocation) error

// Driver parses lines against one tree and dispatches to handlers.
// A Driver is not safe for concurrent use: the error flag it clears and
// reads lives on the shared tree.
type Driver struct {
	root     *cmdtree.Node
	log      *logger.Logger
	handlers map[string]Handler
	fallback Handler
}

// NewDriver creates a driver for root. A nil log discards output.
func NewDriver(root *cmdtree.Node, log *logger.Logger) *Driver {
	if log == nil {
		log = logger.Discard()
	}
	return &Driver{
		root:     root,
		log:      log.With("parser"),
		handlers: make(map[string]Handler),
	}
}

// SetRoot replaces the tree lines are parsed against. Handlers stay bound
// by path.
func (d *Driver) SetRoot(root *cmdtree.Node) {
	d.root = root
}

// Handle binds fn to the command at path (space-separated names, "" for
// the root)
func (d *Driver) Handle(path string, fn Handler) {
	d.handlers[path] = fn
}

// HandleDefault binds fn to every path without its own handler
func (d *Driver) HandleDefault(fn Handler) {
	d.fallback = fn
}

// Parse clears the tree's error flag, parses line and reports a failure
// whenever the flag ended up set anywhere in the tree.
func (d *Driver) Parse(line string) (*Invocation, error) {
	d.root.ClearError()

	inv, err := Parse(d.root, line)
	if d.root.HasError() {
		if err == nil {
			err = derrors.NewParseError("", line, "parse failed")
		}
		d.log.Debug().Str("line", line).Err(err).Msg("Parse failed")
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	d.log.Debug().
		Str("command", inv.Path()).
		Strs("args", inv.Args).
		Bool("help", inv.Help).
		Msg("Parsed line")
	return inv, nil
}

// Run parses line and, when the parse left no error on the tree, invokes
// the handler bound to the resolved command. Blank lines do nothing.
func (d *Driver) Run(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	inv, err := d.Parse(line)
	if err != nil {
		return err
	}

	fn, ok := d.handlers[inv.Path()]
	if !ok {
		fn = d.fallback
	}
	if fn == nil {
		return derrors.NewNotFoundError(inv.Path(), fmt.Sprintf("no handler for %q", inv.Path()))
	}
	return fn(inv)
}
