package completion

import (
	"slices"
	"strings"
	"testing"

	"github.com/NikitaCOEUR/promptkit/internal/cmdtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTree builds root -> list (-f/--file, -d/--dir, -h/--help), enlist, show -> version
func newTestTree(t *testing.T) *cmdtree.Node {
	t.Helper()

	root := cmdtree.New("", "")
	list := cmdtree.New("list", "List entries")
	require.NoError(t, list.AddOption(&cmdtree.Option{Flags: []string{"-f", "--file"}, Help: "File to list", Metavar: "PATH"}))
	require.NoError(t, list.AddOption(&cmdtree.Option{Flags: []string{"-d", "--dir"}, Help: "Directory to list"}))
	require.NoError(t, list.AddOption(&cmdtree.Option{Flags: []string{"-h", "--help"}, Help: "Show help"}))
	require.NoError(t, root.AddCommand(list))
	require.NoError(t, root.AddCommand(cmdtree.New("enlist", "")))

	show := cmdtree.New("show", "Show things")
	require.NoError(t, show.AddCommand(cmdtree.New("version", "Show version")))
	require.NoError(t, root.AddCommand(show))

	return root
}

// newListTree builds root -> list, show with no other name containing "li"
func newListTree(t *testing.T) *cmdtree.Node {
	t.Helper()

	root := cmdtree.New("", "")
	require.NoError(t, root.AddCommand(cmdtree.New("list", "List entries")))
	require.NoError(t, root.AddCommand(cmdtree.New("show", "Show things")))
	return root
}

func complete(root *cmdtree.Node, line string) []Candidate {
	return slices.Collect(Resolve(root, line, len(line)))
}

func inserts(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.InsertText)
	}
	return out
}

func TestResolve_Scenarios(t *testing.T) {
	root := newTestTree(t)

	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{name: "empty input", line: "", expected: []string{}},
		{name: "only whitespace", line: "   ", expected: []string{}},
		{name: "sub-command substring", line: "li", expected: []string{"list", "enlist"}},
		{name: "substring matches both", line: "lis", expected: []string{"list", "enlist"}},
		{name: "unterminated full name still completes", line: "list", expected: []string{"list", "enlist"}},
		{name: "option listing", line: "list -", expected: []string{"-f", "--file", "-d", "--dir"}},
		{name: "consumed option filtered", line: "list -f x -", expected: []string{"-d", "--dir"}},
		{name: "consumed long form hides short form", line: "list --file x -", expected: []string{"-d", "--dir"}},
		{name: "inline value consumes flag", line: "list --file=x -", expected: []string{"-d", "--dir"}},
		{name: "quoted argument is one token", line: `list "a b" -`, expected: []string{"-f", "--file", "-d", "--dir"}},
		{name: "long prefix", line: "list --d", expected: []string{"--dir"}},
		{name: "help flags never offered", line: "list --h", expected: []string{}},
		{name: "nested sub-commands after space", line: "show ", expected: []string{"version"}},
		{name: "nested sub-command partial", line: "show ver", expected: []string{"version"}},
		{name: "after space lists children and options", line: "list ", expected: []string{"-f", "--file", "-d", "--dir"}},
		{name: "root after nothing typed but space", line: " ", expected: []string{}},
		{name: "unknown word ends descent", line: "nope -", expected: []string{}},
		{name: "positional after active node", line: "list foo ba", expected: []string{}},
		{name: "all options consumed", line: "list -f x -d y -", expected: []string{}},
		{name: "flag before partial yields value hint", line: "list -d -", expected: []string{""}},
		{name: "quoted sub-command name", line: `"show" ver`, expected: []string{"version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, inserts(complete(root, tt.line)))
		})
	}
}

func TestResolve_SubCommandCandidate(t *testing.T) {
	root := newListTree(t)

	cands := complete(root, "li")
	require.Len(t, cands, 1)
	assert.Equal(t, Candidate{
		InsertText:        "list",
		DisplayText:       "list",
		HelpText:          "List entries",
		ReplaceFromOffset: 2,
		Kind:              KindCommand,
	}, cands[0])
}

func TestResolve_OptionLabelsAreAligned(t *testing.T) {
	root := newTestTree(t)

	cands := complete(root, "list -")
	require.Len(t, cands, 4)
	assert.Equal(t, "-f      File to list", cands[0].DisplayText)
	assert.Equal(t, "--file  File to list", cands[1].DisplayText)
	assert.Equal(t, "-d      Directory to list", cands[2].DisplayText)
	assert.Equal(t, "--dir   Directory to list", cands[3].DisplayText)

	helpStart := strings.Index(cands[0].DisplayText, "File")
	for _, c := range cands {
		assert.Equal(t, KindOption, c.Kind)
		assert.Equal(t, 1, c.ReplaceFromOffset)
		assert.Equal(t, helpStart, strings.Index(c.DisplayText, c.HelpText), c.DisplayText)
	}
}

func TestResolve_LabelsPaddedWithoutHelp(t *testing.T) {
	root := cmdtree.New("", "")
	run := cmdtree.New("run", "")
	require.NoError(t, run.AddOption(&cmdtree.Option{Flags: []string{"-q"}}))
	require.NoError(t, run.AddOption(&cmdtree.Option{Flags: []string{"--verbose"}, Help: "Talk more"}))
	require.NoError(t, root.AddCommand(run))

	cands := complete(root, "run -")
	require.Len(t, cands, 2)
	assert.Equal(t, "-q       ", cands[0].DisplayText)
	assert.Equal(t, "--verbose  Talk more", cands[1].DisplayText)
}

func TestResolve_WidthIsPerBatch(t *testing.T) {
	root := newTestTree(t)

	cands := complete(root, "list --d")
	require.Len(t, cands, 1)
	assert.Equal(t, "--dir  Directory to list", cands[0].DisplayText)
}

func TestResolve_ValueHint(t *testing.T) {
	root := newTestTree(t)

	for _, line := range []string{"list -f ", "list -f pa", "list --file "} {
		t.Run(line, func(t *testing.T) {
			cands := complete(root, line)
			require.Len(t, cands, 1)
			assert.True(t, cands[0].ExpectsValue())
			assert.Equal(t, "", cands[0].InsertText)
			assert.Equal(t, "<PATH>", cands[0].DisplayText)
			assert.Equal(t, "File to list", cands[0].HelpText)
		})
	}
}

func TestResolve_ValueHintForUndeclaredOption(t *testing.T) {
	root := newTestTree(t)

	cands := complete(root, "list --zzz ")
	require.Len(t, cands, 1)
	assert.True(t, cands[0].ExpectsValue())
	assert.Equal(t, "<value>", cands[0].DisplayText)
	assert.Equal(t, "", cands[0].HelpText)
}

func TestResolve_NeverOffersConsumedFlags(t *testing.T) {
	root := newTestTree(t)

	lines := []string{
		"list -f x -",
		"list -d -",
		"list -d --",
		"list --dir -f y ",
		`list -f "a b" -d -`,
	}
	for _, line := range lines {
		ctx := NewContext(root, line, len(line))
		for _, c := range complete(root, line) {
			_, consumed := ctx.Consumed[c.InsertText]
			assert.False(t, consumed, "%q offered consumed flag %q", line, c.InsertText)
		}
	}
}

func TestResolve_ReplaceCountsRunes(t *testing.T) {
	root := cmdtree.New("", "")
	require.NoError(t, root.AddCommand(cmdtree.New("écho", "")))

	cands := complete(root, "éc")
	require.Len(t, cands, 1)
	assert.Equal(t, 2, cands[0].ReplaceFromOffset)
}

func TestResolve_CursorLimitsText(t *testing.T) {
	root := newTestTree(t)

	line := "li -- trailing"
	cands := slices.Collect(Resolve(root, line, 2))
	assert.Equal(t, []string{"list", "enlist"}, inserts(cands))

	assert.Equal(t, inserts(complete(root, line)), inserts(slices.Collect(Resolve(root, line, 999))))
	assert.Empty(t, slices.Collect(Resolve(root, line, -5)))
}

func TestResolve_EarlyStop(t *testing.T) {
	root := newTestTree(t)

	var got []Candidate
	for c := range Resolve(root, "list -", 6) {
		got = append(got, c)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"-f", "--file"}, inserts(got))
}

func TestResolve_Restartable(t *testing.T) {
	root := newTestTree(t)
	seq := Resolve(root, "list -", 6)

	assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
}

func TestResolve_DoesNotTouchErrorFlag(t *testing.T) {
	root := newTestTree(t)
	root.Child("show").Child("version").SetError()

	_ = complete(root, "show ver")
	assert.True(t, root.HasError())
}

func TestNewContext(t *testing.T) {
	root := newTestTree(t)

	ctx := NewContext(root, `list "a b" -f x -`, 17)
	assert.Equal(t, "list", ctx.Active.Name)
	require.Len(t, ctx.Args, 3)
	assert.Equal(t, `"a b"`, ctx.Args[0].Text)
	assert.Equal(t, "-", ctx.Partial.Text)
	assert.Equal(t, 16, ctx.Partial.Offset)
	assert.Contains(t, ctx.Consumed, "-f")
	assert.False(t, ctx.IsCommandPosition())

	ctx = NewContext(root, "show ", 5)
	assert.Equal(t, "show", ctx.Active.Name)
	assert.Empty(t, ctx.Args)
	assert.Equal(t, "", ctx.Partial.Text)
	assert.Equal(t, 5, ctx.Partial.Offset)
	assert.True(t, ctx.IsCommandPosition())
}

func TestResolver_Complete(t *testing.T) {
	var completer Completer = NewResolver(newTestTree(t))
	assert.Equal(t, []string{"list", "enlist"}, inserts(slices.Collect(completer.Complete("li", 2))))

	completer = NewResolver(newListTree(t))
	assert.Equal(t, []string{"list"}, inserts(slices.Collect(completer.Complete("li", 2))))
}

func TestLimit(t *testing.T) {
	root := newTestTree(t)

	assert.Len(t, slices.Collect(Limit(Resolve(root, "list -", 6), 3)), 3)
	assert.Len(t, slices.Collect(Limit(Resolve(root, "list -", 6), 0)), 4)
	assert.Len(t, slices.Collect(Limit(Resolve(root, "list -", 6), 10)), 4)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "command", KindCommand.String())
	assert.Equal(t, "option", KindOption.String())
	assert.Equal(t, "value", KindValue.String())
	assert.Equal(t, "word", KindWord.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
