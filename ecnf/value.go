package ecnf

import (
	"encoding/json"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// PathSeparator joins section names and keys into a full path.
const PathSeparator = "."

// Value is an optional string. The zero Value is absent.
type Value struct {
	str   string
	valid bool
}

// Some returns a Value holding s.
func Some(s string) Value { return Value{str: s, valid: true} }

// None returns an absent Value.
func None() Value { return Value{} }

// Get returns the string and whether one is present.
func (v Value) Get() (string, bool) { return v.str, v.valid }

// Valid reports whether v holds a string, possibly empty.
func (v Value) Valid() bool { return v.valid }

// String returns the held string, or "" if v is absent.
func (v Value) String() string { return v.str }

// Quote returns the held string as a Go string literal, or "<none>".
func (v Value) Quote() string {
	if !v.valid {
		return "<none>"
	}

	return strconv.Quote(v.str)
}

// MarshalJSON encodes an absent Value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}

	return json.Marshal(v.str)
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	if !v.valid {
		return slog.AnyValue(nil)
	}

	return slog.StringValue(v.str)
}

// native returns the held string, or nil if v is absent.
func (v Value) native() any {
	if !v.valid {
		return nil
	}

	return v.str
}

// Map is the result of parsing an ECNF document: full dotted key paths mapped
// to their values.
type Map map[string]Value

// Lookup returns the value stored at key and whether the key is present.
func (m Map) Lookup(key string) (Value, bool) {
	v, ok := m[key]

	return v, ok
}

// Get returns the string stored at key. The result is false if the key is
// missing or its value is absent.
func (m Map) Get(key string) (string, bool) {
	return m[key].Get()
}

// Keys returns an iterator over the keys of m in lexical order.
func (m Map) Keys() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(m)))
}

// All returns an iterator over the entries of m in lexical key order.
func (m Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for key := range m.Keys() {
			if !yield(key, m[key]) {
				return
			}
		}
	}
}

// Section returns the entries of m below the section path name, with the
// section prefix removed from each key. The result is empty, not nil, if no
// entry belongs to the section.
func (m Map) Section(name string) Map {
	prefix := name + PathSeparator
	sub := make(Map)

	for key, val := range m {
		if rest, ok := strings.CutPrefix(key, prefix); ok {
			sub[rest] = val
		}
	}

	return sub
}

// Equal reports whether m and other hold the same entries.
func (m Map) Equal(other Map) bool {
	return maps.Equal(m, other)
}

// Environ returns the set values of m as "KEY=value" strings suitable for
// [os/exec.Cmd.Env], sorted by key. Path separators become underscores, so
// DB.NAME is exported as DB_NAME. Absent values are skipped.
func (m Map) Environ() []string {
	env := make([]string, 0, len(m))

	for key, val := range m.All() {
		if s, ok := val.Get(); ok {
			env = append(env, EnvName(key)+"="+s)
		}
	}

	return env
}

// EnvName converts a full key path to an environment variable name.
func EnvName(key string) string {
	return strings.ReplaceAll(key, PathSeparator, "_")
}

// Tree returns m as nested maps: each section becomes a map[string]any and
// each value a string, or nil if absent. It fails with [ErrShapeConflict] if
// a path holds both a value and a section.
func (m Map) Tree() (map[string]any, error) {
	root := make(map[string]any)

	for key, val := range m.All() {
		parts := strings.Split(key, PathSeparator)
		node := root

		for i, part := range parts[:len(parts)-1] {
			child, ok := node[part]
			if !ok {
				next := make(map[string]any)
				node[part] = next
				node = next

				continue
			}

			next, ok := child.(map[string]any)
			if !ok {
				return nil, ErrShapeConflict.With(
					slog.String("key", strings.Join(parts[:i+1], PathSeparator)),
				)
			}

			node = next
		}

		leaf := parts[len(parts)-1]
		if _, ok := node[leaf].(map[string]any); ok {
			return nil, ErrShapeConflict.With(slog.String("key", key))
		}

		node[leaf] = val.native()
	}

	return root, nil
}

// flat returns m as a map of native values keyed by full path.
func (m Map) flat() map[string]any {
	out := make(map[string]any, len(m))

	for key, val := range m {
		out[key] = val.native()
	}

	return out
}
