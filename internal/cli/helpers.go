package cli

import (
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/NikitaCOEUR/promptkit/internal/cmdtree"
	"github.com/NikitaCOEUR/promptkit/internal/completion"
	"github.com/NikitaCOEUR/promptkit/internal/config"
	"github.com/NikitaCOEUR/promptkit/internal/logger"
	"github.com/NikitaCOEUR/promptkit/internal/parser"
	"github.com/NikitaCOEUR/promptkit/internal/render"
)

// GrammarBaseName is the file name looked up in the current directory when
// no grammar path is given
const GrammarBaseName = "promptkit"

// grammar holds a loaded grammar and the tree built from it
type grammar struct {
	spec *config.Grammar
	root *cmdtree.Node
}

// loadGrammar loads the grammar at path, or the embedded demo when path is
// empty, and builds its command tree
func loadGrammar(path string, log *logger.Logger) (*grammar, error) {
	src, err := newGrammarSource(path, log)
	if err != nil {
		return nil, err
	}
	return src.Grammar(), nil
}

// grammarSource keeps a grammar loaded through one Loader so that edits to
// the file show up on the next Refresh
type grammarSource struct {
	path    string
	loader  *config.Loader
	log     *logger.Logger
	current *grammar
}

func newGrammarSource(path string, log *logger.Logger) (*grammarSource, error) {
	s := &grammarSource{path: path, loader: config.New(), log: log}

	var spec *config.Grammar
	var err error
	if path == "" {
		spec, err = config.DemoGrammar()
	} else {
		spec, err = s.loader.Load(path)
	}
	if err != nil {
		return nil, err
	}

	s.current, err = build(spec)
	if err != nil {
		return nil, err
	}

	source := path
	if source == "" {
		source = "embedded"
	}
	log.Debug().Str("source", source).Str("grammar", spec.String()).Msg("Grammar loaded")
	return s, nil
}

func build(spec *config.Grammar) (*grammar, error) {
	root, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build command tree: %w", err)
	}
	return &grammar{spec: spec, root: root}, nil
}

// Grammar returns the grammar currently in use
func (s *grammarSource) Grammar() *grammar {
	return s.current
}

// Prog returns the program name of the current grammar
func (s *grammarSource) Prog() string {
	return s.current.spec.Prog
}

// Refresh reloads the grammar file and reports whether a new tree replaced
// the current one. The embedded demo never changes. On error the current
// grammar stays in use.
func (s *grammarSource) Refresh() (bool, error) {
	if s.path == "" {
		return false, nil
	}

	spec, err := s.loader.Load(s.path)
	if err != nil {
		return false, err
	}
	if spec == s.current.spec {
		return false, nil
	}

	g, err := build(spec)
	if err != nil {
		return false, err
	}
	s.current = g
	s.log.Info().Str("source", s.path).Msg("Grammar reloaded")
	return true, nil
}

// Complete implements completion.Completer against the current tree
func (s *grammarSource) Complete(text string, cursor int) iter.Seq[completion.Candidate] {
	return completion.Resolve(s.current.root, text, cursor)
}

// findGrammarFile returns the first promptkit.<ext> file in dir
func findGrammarFile(dir string) (string, bool) {
	for _, ext := range config.SupportedExtensions {
		path := filepath.Join(dir, GrammarBaseName+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// newLogger creates the command logger, writing to stderr
func newLogger(level string) *logger.Logger {
	return logger.New(level, os.Stderr)
}

// output returns w, or stdout when w is nil
func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// writeCandidates prints one candidate per line. Plain mode is
// "insert<TAB>help"; value hints print their display text instead. Display
// mode uses the aligned, styled list.
func writeCandidates(w io.Writer, cands []completion.Candidate, display bool) {
	if display {
		if len(cands) > 0 {
			_, _ = fmt.Fprintln(w, render.Candidates(cands))
		}
		return
	}
	for _, c := range cands {
		text := c.InsertText
		if c.ExpectsValue() {
			text = c.DisplayText
		}
		if c.HelpText == "" {
			_, _ = fmt.Fprintln(w, text)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", text, c.HelpText)
	}
}

// describeInvocation renders a parsed line: command path, options sorted by
// name, positional arguments
func describeInvocation(inv *parser.Invocation) string {
	var b strings.Builder

	path := inv.Path()
	if path == "" {
		path = "(root)"
	}
	b.WriteString("command: " + path + "\n")

	if len(inv.Options) > 0 {
		names := make([]string, 0, len(inv.Options))
		for name := range inv.Options {
			names = append(names, name)
		}
		slices.Sort(names)

		pairs := make([]string, 0, len(names))
		for _, name := range names {
			pairs = append(pairs, name+"="+inv.Options[name])
		}
		b.WriteString("options: " + strings.Join(pairs, " ") + "\n")
	}

	if len(inv.Args) > 0 {
		b.WriteString(fmt.Sprintf("args: %q\n", inv.Args))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
