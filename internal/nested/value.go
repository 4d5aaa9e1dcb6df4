package nested

import (
	"fmt"
	"iter"
	"slices"

	"github.com/NikitaCOEUR/promptkit/internal/derrors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is what a word maps to in a nested dictionary. It is one of Leaf,
// *SubTree or LeafSet.
type Value interface {
	isValue()
}

// Leaf ends a branch: the word has no further completions
type Leaf struct{}

// LeafSet is shorthand for a SubTree whose words are all leaves
type LeafSet []string

// SubTree maps words to their values, keeping insertion order
type SubTree struct {
	entries *orderedmap.OrderedMap[string, Value]
}

func (Leaf) isValue()     {}
func (LeafSet) isValue()  {}
func (*SubTree) isValue() {}

// NewSubTree creates an empty mapping
func NewSubTree() *SubTree {
	return &SubTree{entries: orderedmap.New[string, Value]()}
}

// Set maps word to v, a nil v being a Leaf. It returns t for chaining.
func (t *SubTree) Set(word string, v Value) *SubTree {
	if v == nil {
		v = Leaf{}
	}
	if t.entries == nil {
		t.entries = orderedmap.New[string, Value]()
	}
	t.entries.Set(word, v)
	return t
}

// Get returns the value of word
func (t *SubTree) Get(word string) (Value, bool) {
	if t == nil || t.entries == nil {
		return nil, false
	}
	return t.entries.Get(word)
}

// Len returns the number of words at this level
func (t *SubTree) Len() int {
	if t == nil || t.entries == nil {
		return 0
	}
	return t.entries.Len()
}

// Entries iterates over words in insertion order
func (t *SubTree) Entries() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if t == nil || t.entries == nil {
			return
		}
		for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// FromAny converts a decoded literal (nil, map[string]any, []any or
// []string) into a SubTree. Go maps carry no order, so their keys are
// sorted.
func FromAny(data map[string]any) (*SubTree, error) {
	return fromAny("", data)
}

func fromAny(path string, data map[string]any) (*SubTree, error) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tree := NewSubTree()
	for _, key := range keys {
		field := joinPath(path, key)
		switch v := data[key].(type) {
		case nil:
			tree.Set(key, Leaf{})
		case map[string]any:
			sub, err := fromAny(field, v)
			if err != nil {
				return nil, err
			}
			tree.Set(key, sub)
		case []string:
			tree.Set(key, LeafSet(slices.Clone(v)))
		case []any:
			set := make(LeafSet, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, derrors.NewValidationError(field, fmt.Sprintf("set items must be strings, got %T", item), nil)
				}
				set = append(set, s)
			}
			tree.Set(key, set)
		default:
			return nil, derrors.NewValidationError(field, fmt.Sprintf("unsupported value type %T", v), nil)
		}
	}
	return tree, nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
