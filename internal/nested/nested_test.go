package nested

import (
	"errors"
	"slices"
	"testing"

	"github.com/NikitaCOEUR/promptkit/internal/completion"
	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `
words:
  show:
    version:
    ip: [interface, route]
  exit: null
help:
  show:
    help: Show info
    ip:
      help: IP info
  exit: Leave the shell
`

func sampleCompleter(t *testing.T, opts Options) *Completer {
	t.Helper()
	words, help, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)
	return FromNested(words, help, opts)
}

func collect(seq func(func(completion.Candidate) bool)) []string {
	var out []string
	for c := range seq {
		out = append(out, c.InsertText)
	}
	return out
}

func TestCompleter_Complete(t *testing.T) {
	c := sampleCompleter(t, DefaultOptions)

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "empty lists top level in order", text: "", expected: []string{"show", "exit"}},
		{name: "prefix", text: "sh", expected: []string{"show"}},
		{name: "substring", text: "xi", expected: []string{"exit"}},
		{name: "leading whitespace is ignored", text: "   sh", expected: []string{"show"}},
		{name: "descends after space", text: "show ", expected: []string{"version", "ip"}},
		{name: "set becomes leaves", text: "show ip ", expected: []string{"interface", "route"}},
		{name: "partial at depth", text: "show ip ro", expected: []string{"route"}},
		{name: "extra spaces between words", text: "show   ip   ro", expected: []string{"route"}},
		{name: "leaf has no completions", text: "exit ", expected: nil},
		{name: "unknown first word", text: "nope x", expected: nil},
		{name: "unfinished known word stays at level", text: "show", expected: []string{"show"}},
		{name: "option-like text stays at this level", text: "-x sh", expected: []string{"show"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collect(c.Complete(tt.text, len(tt.text))))
		})
	}
}

func TestCompleter_HelpAndOffsets(t *testing.T) {
	c := sampleCompleter(t, DefaultOptions)

	cands := slices.Collect(c.Complete("show ", 5))
	require.Len(t, cands, 2)
	assert.Equal(t, "", cands[0].HelpText, "missing help is empty")
	assert.Equal(t, "IP info", cands[1].HelpText)
	assert.Equal(t, 0, cands[1].ReplaceFromOffset)
	assert.Equal(t, completion.KindWord, cands[1].Kind)

	cands = slices.Collect(c.Complete("ex", 2))
	require.Len(t, cands, 1)
	assert.Equal(t, "Leave the shell", cands[0].HelpText)
	assert.Equal(t, 2, cands[0].ReplaceFromOffset)
}

func TestCompleter_Options(t *testing.T) {
	prefix := sampleCompleter(t, Options{})
	assert.Nil(t, collect(prefix.Complete("ho", 2)))
	assert.Equal(t, []string{"show"}, collect(prefix.Complete("sh", 2)))

	middle := sampleCompleter(t, DefaultOptions)
	assert.Equal(t, []string{"show"}, collect(middle.Complete("ho", 2)))

	assert.Nil(t, collect(middle.Complete("SH", 2)))
	folded := sampleCompleter(t, Options{MatchMiddle: true, IgnoreCase: true})
	assert.Equal(t, []string{"show"}, collect(folded.Complete("SH", 2)))
	assert.Equal(t, []string{"route"}, collect(folded.Complete("show ip RO", 10)), "options apply below the top level")
}

func TestCompleter_Cursor(t *testing.T) {
	c := sampleCompleter(t, DefaultOptions)

	assert.Equal(t, []string{"show"}, collect(c.Complete("show ip", 2)))
	assert.Equal(t, []string{"show", "exit"}, collect(c.Complete("show ip", -1)))
	assert.Equal(t, []string{"ip"}, collect(c.Complete("show ip", 100)))
}

func TestCompleter_EarlyStop(t *testing.T) {
	c := sampleCompleter(t, DefaultOptions)

	var got []string
	for cand := range c.Complete("show ip ", 8) {
		got = append(got, cand.InsertText)
		break
	}
	assert.Equal(t, []string{"interface"}, got)
}

func TestFromNested_Literal(t *testing.T) {
	data := NewSubTree().
		Set("zeta", nil).
		Set("alpha", NewSubTree().Set("one", Leaf{})).
		Set("mid", LeafSet{"b", "a"})
	help := NewHelp("").Set("alpha", NewHelp("First letter").Set("one", NewHelp("Uno")))

	c := FromNested(data, help, DefaultOptions)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, c.Words())
	assert.Nil(t, c.Sub("zeta"))
	require.NotNil(t, c.Sub("alpha"))
	assert.Equal(t, []string{"one"}, c.Sub("alpha").Words())
	assert.Equal(t, []string{"b", "a"}, c.Sub("mid").Words())

	cands := slices.Collect(c.Complete("alpha o", 7))
	require.Len(t, cands, 1)
	assert.Equal(t, "Uno", cands[0].HelpText)
}

func TestFromNested_NilHelp(t *testing.T) {
	c := FromNested(NewSubTree().Set("a", NewSubTree().Set("b", nil)), nil, DefaultOptions)

	cands := slices.Collect(c.Complete("a ", 2))
	require.Len(t, cands, 1)
	assert.Equal(t, "", cands[0].HelpText)
}

func TestFromAny(t *testing.T) {
	tree, err := FromAny(map[string]any{
		"show": map[string]any{"version": nil},
		"exit": nil,
		"ip":   []any{"route", "link"},
		"set":  []string{"x"},
	})
	require.NoError(t, err)

	var keys []string
	for k := range tree.Entries() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"exit", "ip", "set", "show"}, keys, "map keys are sorted")

	v, ok := tree.Get("ip")
	require.True(t, ok)
	assert.Equal(t, LeafSet{"route", "link"}, v)

	v, _ = tree.Get("exit")
	assert.Equal(t, Leaf{}, v)
}

func TestFromAny_Errors(t *testing.T) {
	tests := []struct {
		name  string
		data  map[string]any
		field string
	}{
		{name: "scalar value", data: map[string]any{"a": 3}, field: "a"},
		{name: "non-string set item", data: map[string]any{"a": []any{1}}, field: "a"},
		{name: "nested error path", data: map[string]any{"a": map[string]any{"b": true}}, field: "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromAny(tt.data)
			var verr *derrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestHelpFromAny(t *testing.T) {
	help, err := HelpFromAny(map[string]any{
		"show": map[string]any{"help": "Show info", "ip": "IP info"},
		"exit": "Leave",
	})
	require.NoError(t, err)

	assert.Equal(t, "Show info", help.For("show"))
	assert.Equal(t, "IP info", help.Sub("show").For("ip"))
	assert.Equal(t, "Leave", help.For("exit"))
	assert.Equal(t, "", help.For("missing"))

	_, err = HelpFromAny(map[string]any{"a": 1})
	assert.Error(t, err)
}

func TestHelp_NilIsEmpty(t *testing.T) {
	var h *Help
	assert.Nil(t, h.Sub("x"))
	assert.Equal(t, "", h.For("x"))
}

func TestSubTree_ZeroValue(t *testing.T) {
	var tree SubTree
	assert.Equal(t, 0, tree.Len())
	_, ok := tree.Get("x")
	assert.False(t, ok)

	tree.Set("x", nil)
	assert.Equal(t, 1, tree.Len())
}
