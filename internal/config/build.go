package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/NikitaCOEUR/promptkit/internal/cmdtree"
)

//go:embed demo.yml
var demoGrammar []byte

// DemoGrammar returns the built-in example grammar
func DemoGrammar() (*Grammar, error) {
	return ParseGrammar(demoGrammar, ".yml")
}

// helpData is the template context of a help text
type helpData struct {
	Prog    string // program name
	Command string // name of the command the text belongs to
	Path    string // full command path
}

// Build turns the document into a command tree. Declaration order is kept
// for both sub-commands and options.
func (g *Grammar) Build() (*cmdtree.Node, error) {
	root := cmdtree.New("", g.expandHelp(g.Help, helpData{Prog: g.Prog}))
	if err := addOptions(root, g.Options); err != nil {
		return nil, err
	}
	for i := range g.Commands {
		if err := g.addCommand(root, &g.Commands[i]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (g *Grammar) addCommand(parent *cmdtree.Node, spec *CommandSpec) error {
	path := strings.TrimSpace(parent.Path() + " " + spec.Name)
	node := cmdtree.New(spec.Name, g.expandHelp(spec.Help, helpData{
		Prog:    g.Prog,
		Command: spec.Name,
		Path:    path,
	}))
	if err := parent.AddCommand(node); err != nil {
		return err
	}
	if err := addOptions(node, spec.Options); err != nil {
		return err
	}
	for i := range spec.Commands {
		if err := g.addCommand(node, &spec.Commands[i]); err != nil {
			return err
		}
	}
	return nil
}

func addOptions(node *cmdtree.Node, specs []OptionSpec) error {
	for _, spec := range specs {
		opt := &cmdtree.Option{
			Flags:   append([]string(nil), spec.Flags...),
			Help:    spec.Help,
			Metavar: spec.Metavar,
		}
		if err := node.AddOption(opt); err != nil {
			return err
		}
	}
	return nil
}

// expandHelp renders a help text as a template. Text that fails to parse
// or execute is returned unchanged.
func (g *Grammar) expandHelp(text string, data helpData) string {
	if !strings.Contains(text, "{{") {
		return text
	}

	tmpl, err := template.New("help").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return text
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return text
	}
	return buf.String()
}

// String summarizes the grammar for log lines
func (g *Grammar) String() string {
	return fmt.Sprintf("grammar %q (%d commands)", g.Prog, len(g.Commands))
}
