package nested

import (
	"errors"
	"testing"

	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_KeepsFileOrder(t *testing.T) {
	words, help, err := Parse([]byte(`
words:
  zeta:
  alpha:
    b: ~
    a: null
  mid: [y, x]
`))
	require.NoError(t, err)

	c := FromNested(words, help, DefaultOptions)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, c.Words())
	assert.Equal(t, []string{"b", "a"}, c.Sub("alpha").Words())
	assert.Equal(t, []string{"y", "x"}, c.Sub("mid").Words())
	assert.Equal(t, "", help.For("zeta"))
}

func TestParse_Anchors(t *testing.T) {
	words, _, err := Parse([]byte(`
words:
  first: &common
    up:
    down:
  second: *common
`))
	require.NoError(t, err)

	c := FromNested(words, nil, DefaultOptions)
	assert.Equal(t, []string{"up", "down"}, c.Sub("second").Words())
}

func TestParse_EmptyDocument(t *testing.T) {
	words, help, err := Parse([]byte(``))
	require.NoError(t, err)
	assert.Equal(t, 0, words.Len())
	assert.Equal(t, "", help.For("x"))
}

func TestParse_HelpLayout(t *testing.T) {
	_, help, err := Parse([]byte(`
help:
  show:
    help: Show info
    ip: IP info
  exit: Leave
`))
	require.NoError(t, err)
	assert.Equal(t, "Show info", help.For("show"))
	assert.Equal(t, "IP info", help.Sub("show").For("ip"))
	assert.Equal(t, "Leave", help.For("exit"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{name: "words is a list", doc: "words: [a, b]", field: "words"},
		{name: "scalar word value", doc: "words: {a: 3}", field: "words.a"},
		{name: "nested set item", doc: "words: {a: [[x]]}", field: "words.a"},
		{name: "help sequence", doc: "help: {a: [x]}", field: "help.a"},
		{name: "syntax error", doc: "words: {a", field: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			var verr *derrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
