package argot

import (
	"fmt"
	"sort"
	"time"

	"github.com/marrec/argot/types"
	"github.com/marrec/argot/util"
)

// Value is the tagged variant stored under a destination name. Exactly
// one payload field is meaningful, selected by Kind.
type Value struct {
	Kind  types.Kind
	Str   string
	List  []string
	Map   map[string]string
	Flag  bool
	Count int
}

// ScalarValue wraps a single string value
func ScalarValue(s string) Value {
	return Value{Kind: types.Scalar, Str: s}
}

// ListValue wraps an ordered sequence of values
func ListValue(elements ...string) Value {
	return Value{Kind: types.Array, List: elements}
}

// MapValue wraps a key to value mapping
func MapValue(entries map[string]string) Value {
	return Value{Kind: types.Pair, Map: entries}
}

// FlagValue wraps a boolean
func FlagValue(b bool) Value {
	return Value{Kind: types.Standalone, Flag: b}
}

// CountValue wraps an occurrence count
func CountValue(n int) Value {
	return Value{Kind: types.Counter, Count: n}
}

// Store is the accessor contract the resolver depends on. Any
// implementation of these three operations may substitute for the
// built-in Namespace, e.g. to seed values from configuration.
type Store interface {
	SetAttr(dest string, value Value)
	GetAttr(dest string) (Value, bool)
	DeleteAttr(dest string)
}

// Namespace is the accumulative result store populated across one or
// more Parse calls. It lives as long as its parser and is only mutated
// by the resolver during Parse (and by registration resets).
type Namespace struct {
	attrs map[string]Value
}

// NewNamespace creates an empty Namespace
func NewNamespace() *Namespace {
	return &Namespace{attrs: map[string]Value{}}
}

// SetAttr stores value under dest, replacing any previous value
func (n *Namespace) SetAttr(dest string, value Value) {
	n.attrs[dest] = value
}

// GetAttr returns the value stored under dest
func (n *Namespace) GetAttr(dest string) (Value, bool) {
	value, found := n.attrs[dest]
	return value, found
}

// DeleteAttr removes the value stored under dest
func (n *Namespace) DeleteAttr(dest string) {
	delete(n.attrs, dest)
}

// Keys returns all destination names with a stored value, sorted
func (n *Namespace) Keys() []string {
	keys := make([]string, 0, len(n.attrs))
	for key := range n.attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// Len returns the number of stored values
func (n *Namespace) Len() int {
	return len(n.attrs)
}

// Get returns the scalar value stored under dest
func (n *Namespace) Get(dest string) (string, bool) {
	value, found := n.attrs[dest]
	if !found || value.Kind != types.Scalar {
		return "", false
	}

	return value.Str, true
}

// GetList returns the sequence stored under dest
func (n *Namespace) GetList(dest string) ([]string, bool) {
	value, found := n.attrs[dest]
	if !found || value.Kind != types.Array {
		return nil, false
	}

	return value.List, true
}

// GetMap returns the key to value mapping stored under dest
func (n *Namespace) GetMap(dest string) (map[string]string, bool) {
	value, found := n.attrs[dest]
	if !found || value.Kind != types.Pair {
		return nil, false
	}

	return value.Map, true
}

// GetBool returns the boolean stored under dest, false when absent
func (n *Namespace) GetBool(dest string) bool {
	value, found := n.attrs[dest]
	return found && value.Kind == types.Standalone && value.Flag
}

// GetCount returns the occurrence count stored under dest, 0 when absent
func (n *Namespace) GetCount(dest string) int {
	value, found := n.attrs[dest]
	if !found || value.Kind != types.Counter {
		return 0
	}

	return value.Count
}

// GetInt interprets the scalar stored under dest as an integer
func (n *Namespace) GetInt(dest string) (int64, error) {
	raw, found := n.Get(dest)
	if !found {
		return 0, fmt.Errorf("no scalar value for %q", dest)
	}

	return util.ParseInt(raw)
}

// GetFloat interprets the scalar stored under dest as a float
func (n *Namespace) GetFloat(dest string) (float64, error) {
	raw, found := n.Get(dest)
	if !found {
		return 0, fmt.Errorf("no scalar value for %q", dest)
	}

	return util.ParseFloat(raw)
}

// GetTime interprets the scalar stored under dest as a timestamp
func (n *Namespace) GetTime(dest string) (time.Time, error) {
	raw, found := n.Get(dest)
	if !found {
		return time.Time{}, fmt.Errorf("no scalar value for %q", dest)
	}

	return util.ParseTime(raw)
}
