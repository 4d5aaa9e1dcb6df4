package render

import (
	"strings"
	"testing"

	"github.com/NikitaCOEUR/promptkit/internal/cmdtree"
	"github.com/NikitaCOEUR/promptkit/internal/completion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T) *cmdtree.Node {
	t.Helper()

	root := cmdtree.New("", "Demo shell")
	require.NoError(t, root.AddOption(&cmdtree.Option{Flags: []string{"-v", "--verbose"}, Help: "Verbose"}))
	list := cmdtree.New("list", "List entries")
	require.NoError(t, list.AddOption(&cmdtree.Option{Flags: []string{"-f", "--file"}, Help: "File to list", Metavar: "PATH"}))
	require.NoError(t, root.AddCommand(list))
	require.NoError(t, list.AddCommand(cmdtree.New("remote", "")))
	require.NoError(t, root.AddCommand(cmdtree.New("show", "Show things")))
	return root
}

func TestCandidates(t *testing.T) {
	out := Candidates([]completion.Candidate{
		{InsertText: "list", HelpText: "List entries", Kind: completion.KindCommand},
		{InsertText: "enlist", Kind: completion.KindCommand},
		{InsertText: "remote", HelpText: "Remotes", Kind: completion.KindWord},
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "list")
	assert.Contains(t, lines[0], Separator+" List entries")
	assert.NotContains(t, lines[1], Separator, "no help, no separator")
	assert.Contains(t, lines[2], "Remotes")
	assert.Equal(t, strings.Index(lines[0], Separator), strings.Index(lines[2], Separator), "help columns line up")
}

func TestCandidates_ValueHint(t *testing.T) {
	out := Candidates([]completion.Candidate{
		{DisplayText: "<PATH>", HelpText: "File to list", Kind: completion.KindValue},
	})
	assert.Contains(t, out, "<PATH>")
	assert.Contains(t, out, "File to list")
}

func TestCandidates_Empty(t *testing.T) {
	assert.Equal(t, "", Candidates(nil))
}

func TestTokens(t *testing.T) {
	line := `list -f "a b"  x`
	out := Tokens(line)
	for _, part := range []string{"list", "-f", `"a b"`, "  ", "x"} {
		assert.Contains(t, out, part)
	}
}

func TestTokenTable(t *testing.T) {
	out := TokenTable(`ls "a b"`)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "word")
	assert.Contains(t, lines[1], "whitespace")
	assert.Contains(t, lines[2], "quoted")
	assert.Contains(t, lines[2], `"\"a b\""`)
	assert.Contains(t, lines[2], "3")
}

func TestTree(t *testing.T) {
	out := Tree(newTree(t), "demo")
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "demo")
	assert.Contains(t, lines[0], "Demo shell")
	assert.Contains(t, lines[1], "-v, --verbose")
	assert.Contains(t, lines[2], "List entries")
	assert.Contains(t, lines[3], "-f, --file")
	assert.Contains(t, lines[3], "PATH")
	assert.Contains(t, lines[4], "remote")
	assert.Contains(t, lines[5], "show")
}

func TestTree_NoProg(t *testing.T) {
	out := Tree(newTree(t), "")
	assert.NotContains(t, out, "Demo shell")
	assert.Contains(t, out, "list")
}

func TestUsage(t *testing.T) {
	root := newTree(t)

	out := Usage(root.Child("list"), "demo")
	assert.Contains(t, out, "usage: demo list")
	assert.Contains(t, out, "List entries")
	assert.Contains(t, out, "options:")
	assert.Contains(t, out, "--file")
	assert.Contains(t, out, "commands:")
	assert.Contains(t, out, "remote")

	out = Usage(root.Child("show"), "")
	assert.Contains(t, out, "usage: show")
	assert.NotContains(t, out, "options:")
}
