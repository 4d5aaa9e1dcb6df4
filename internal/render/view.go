// Package render formats completion candidates, tokens and command trees
// for the terminal. It only builds strings; writing them is up to the caller.
package render

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/promptkit/internal/cmdtree"
	"github.com/NikitaCOEUR/promptkit/internal/completion"
	"github.com/NikitaCOEUR/promptkit/internal/lexer"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	// Colors and styles
	wordStyle = lipgloss.NewStyle().
			Bold(true)

	commandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	quotedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	metavarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Separator joins a word and its help text in candidate lists
const Separator = "---"

// Candidates renders one line per candidate: the bold word, then its help
// after Separator. Words are padded so help texts line up.
func Candidates(cands []completion.Candidate) string {
	width := 0
	for _, c := range cands {
		width = max(width, runewidth.StringWidth(label(c)))
	}

	var b strings.Builder
	for _, c := range cands {
		l := label(c)
		if c.HelpText == "" {
			b.WriteString(styleFor(c.Kind).Render(l) + "\n")
			continue
		}
		pad := strings.Repeat(" ", width-runewidth.StringWidth(l))
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			styleFor(c.Kind).Render(l),
			pad,
			subtleStyle.Render(Separator),
			c.HelpText))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// label is the word shown for a candidate; value hints have no insert text
func label(c completion.Candidate) string {
	if c.ExpectsValue() {
		return c.DisplayText
	}
	return c.InsertText
}

func styleFor(kind completion.Kind) lipgloss.Style {
	switch kind {
	case completion.KindCommand:
		return commandStyle
	case completion.KindOption:
		return optionStyle
	case completion.KindValue:
		return metavarStyle
	default:
		return wordStyle
	}
}

// Tokens renders text with each token styled by its kind. Whitespace is
// kept as is, so the output lines up with the input.
func Tokens(text string) string {
	var b strings.Builder
	for tok := range lexer.Scan(text) {
		switch tok.Kind {
		case lexer.Whitespace:
			b.WriteString(tok.Text)
		case lexer.OptionFlag:
			b.WriteString(optionStyle.Render(tok.Text))
		case lexer.QuotedString:
			b.WriteString(quotedStyle.Render(tok.Text))
		default:
			b.WriteString(wordStyle.Render(tok.Text))
		}
	}
	return b.String()
}

// TokenTable renders one line per token: kind, byte offset and quoted text
func TokenTable(text string) string {
	var b strings.Builder
	for tok := range lexer.Scan(text) {
		b.WriteString(fmt.Sprintf("%-10s %4d  %q\n", tok.Kind, tok.Offset, tok.Text))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Tree renders the command tree below root, one command per line,
// indented by depth, with options listed under their command.
func Tree(root *cmdtree.Node, prog string) string {
	var b strings.Builder
	if prog != "" {
		b.WriteString(commandStyle.Render(prog))
		if root.Help != "" {
			b.WriteString("  " + subtleStyle.Render(root.Help))
		}
		b.WriteString("\n")
	}
	writeOptions(&b, root, 1)
	for _, child := range root.Children() {
		writeNode(&b, child, 1)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeNode(b *strings.Builder, n *cmdtree.Node, depth int) {
	indent := strings.Repeat("  ", depth-1)
	b.WriteString(indent + commandStyle.Render(n.Name))
	if n.Help != "" {
		b.WriteString("  " + subtleStyle.Render(n.Help))
	}
	b.WriteString("\n")

	writeOptions(b, n, depth+1)
	for _, child := range n.Children() {
		writeNode(b, child, depth+1)
	}
}

func writeOptions(b *strings.Builder, n *cmdtree.Node, depth int) {
	indent := strings.Repeat("  ", depth-1)
	for _, opt := range n.Options {
		flags := strings.Join(opt.Flags, ", ")
		b.WriteString(indent + optionStyle.Render(flags))
		if opt.TakesValue() {
			b.WriteString(" " + metavarStyle.Render(opt.Metavar))
		}
		if opt.Help != "" {
			b.WriteString("  " + subtleStyle.Render(opt.Help))
		}
		b.WriteString("\n")
	}
}

// Usage renders the help of one command: its path, help text, options and
// sub-commands
func Usage(n *cmdtree.Node, prog string) string {
	var b strings.Builder

	path := strings.TrimSpace(prog + " " + n.Path())
	b.WriteString(commandStyle.Render("usage: "+path) + "\n")
	if n.Help != "" {
		b.WriteString(n.Help + "\n")
	}

	if len(n.Options) > 0 {
		b.WriteString("\n" + subtleStyle.Render("options:") + "\n")
		writeOptions(&b, n, 2)
	}
	if n.Len() > 0 {
		b.WriteString("\n" + subtleStyle.Render("commands:") + "\n")
		for name, child := range n.Children() {
			b.WriteString("  " + commandStyle.Render(name))
			if child.Help != "" {
				b.WriteString("  " + subtleStyle.Render(child.Help))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
