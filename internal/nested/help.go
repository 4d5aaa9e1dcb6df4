package nested

import (
	"fmt"
	"slices"

	"github.com/NikitaCOEUR/promptkit/internal/derrors"
)

// Help mirrors the shape of a nested dictionary: each word may carry a help
// text and the help of the words below it. A nil *Help is valid and has no
// text anywhere.
type Help struct {
	Text  string
	words map[string]*Help
}

// NewHelp creates a help node with the given text
func NewHelp(text string) *Help {
	return &Help{Text: text}
}

// Set attaches the help of word. It returns h for chaining.
func (h *Help) Set(word string, sub *Help) *Help {
	if h.words == nil {
		h.words = make(map[string]*Help)
	}
	h.words[word] = sub
	return h
}

// Sub returns the help of word, nil when there is none
func (h *Help) Sub(word string) *Help {
	if h == nil {
		return nil
	}
	return h.words[word]
}

// For returns the help text of word, empty when there is none
func (h *Help) For(word string) string {
	if sub := h.Sub(word); sub != nil {
		return sub.Text
	}
	return ""
}

// HelpFromAny converts a decoded literal into a Help tree. In a mapping the
// "help" key holding a string is the text of the enclosing word; every
// other key is a word, whose value is either its own mapping or directly
// its help text.
func HelpFromAny(data map[string]any) (*Help, error) {
	return helpFromAny("", data)
}

func helpFromAny(path string, data map[string]any) (*Help, error) {
	h := &Help{}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		field := joinPath(path, key)
		switch v := data[key].(type) {
		case nil:
		case string:
			if key == helpKey {
				h.Text = v
				continue
			}
			h.Set(key, NewHelp(v))
		case map[string]any:
			sub, err := helpFromAny(field, v)
			if err != nil {
				return nil, err
			}
			h.Set(key, sub)
		default:
			return nil, derrors.NewValidationError(field, fmt.Sprintf("help must be a string or a mapping, got %T", v), nil)
		}
	}
	return h, nil
}

const helpKey = "help"
