package ecnf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format writes m to w as a canonical ECNF document: keys are sorted, shared
// path prefixes are grouped into sections, and each nesting level is indented
// by indent spaces. Parsing the output yields a Map equal to m.
func (m Map) Format(_ context.Context, w io.Writer, indent int) error {
	root, err := m.sections()
	if err != nil {
		return err
	}

	return root.format(w, strings.Repeat(" ", max(indent, 0)), 0)
}

// FormatJSON writes m to w as a JSON object. If nested is true, sections
// become nested objects; otherwise keys are full paths. Absent values are
// written as null.
func (m Map) FormatJSON(
	_ context.Context,
	w io.Writer,
	indent int,
	nested bool,
) error {
	data, err := m.native(nested)
	if err != nil {
		return err
	}

	var out []byte

	if indent > 0 {
		out, err = json.MarshalIndent(data, "", strings.Repeat(" ", indent))
	} else {
		out, err = json.Marshal(data)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(out))

	return err
}

// FormatYAML writes m to w as a YAML mapping, in flow style if indent is not
// positive. Nesting follows [Map.FormatJSON].
func (m Map) FormatYAML(
	ctx context.Context,
	w io.Writer,
	indent int,
	nested bool,
) error {
	data, err := m.native(nested)
	if err != nil {
		return err
	}

	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	out, err := yaml.MarshalContext(ctx, data, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(out))

	return err
}

// FormatTOML writes m to w as a TOML document with one table per section.
// TOML has no null, so absent values are omitted.
func (m Map) FormatTOML(_ context.Context, w io.Writer, indent int) error {
	tree, err := m.Tree()
	if err != nil {
		return err
	}

	enc := toml.NewEncoder(w)
	enc.Indent = strings.Repeat(" ", max(indent, 0))

	return enc.Encode(pruneAbsent(tree))
}

// FormatEnv writes the set values of m to w as POSIX shell export
// statements, using the names from [EnvName]. Absent values are omitted.
func (m Map) FormatEnv(_ context.Context, w io.Writer) error {
	for key, val := range m.All() {
		s, ok := val.Get()
		if !ok {
			continue
		}

		_, err := fmt.Fprintf(w, "export %s=%s\n", EnvName(key), shellQuote(s))
		if err != nil {
			return err
		}
	}

	return nil
}

func (m Map) native(nested bool) (map[string]any, error) {
	if nested {
		return m.Tree()
	}

	return m.flat(), nil
}

// pruneAbsent removes nil values from a tree built by [Map.Tree].
func pruneAbsent(tree map[string]any) map[string]any {
	for key, val := range tree {
		switch v := val.(type) {
		case nil:
			delete(tree, key)
		case map[string]any:
			tree[key] = pruneAbsent(v)
		}
	}

	return tree
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// section is a node of the document rebuilt from full key paths.
type section struct {
	children map[string]*section
	value    Value
	isValue  bool
}

// sections groups the keys of m by path segment, validating each segment and
// value so that the formatted document parses back to m.
func (m Map) sections() (*section, error) {
	root := &section{}

	for key, val := range m {
		if s, ok := val.Get(); ok && strings.ContainsAny(s, "\r\n") {
			return nil, ErrInvalidValue.With(slog.String("key", key))
		}

		node := root

		for part := range strings.SplitSeq(key, PathSeparator) {
			if !validKey(part) {
				return nil, ErrInvalidPath.With(slog.String("key", key))
			}

			if node.children == nil {
				node.children = make(map[string]*section)
			}

			child, ok := node.children[part]
			if !ok {
				child = &section{}
				node.children[part] = child
			}

			node = child
		}

		node.value = val
		node.isValue = true
	}

	return root, nil
}

func (s *section) format(w io.Writer, indent string, depth int) error {
	pad := strings.Repeat(indent, depth)

	for _, name := range slices.Sorted(maps.Keys(s.children)) {
		child := s.children[name]

		if child.isValue {
			var err error

			if str, ok := child.value.Get(); ok {
				_, err = fmt.Fprintf(w, "%s%s: \"%s\"\n", pad, name, str)
			} else {
				_, err = fmt.Fprintf(w, "%s%s:\n", pad, name)
			}

			if err != nil {
				return err
			}
		}

		if len(child.children) == 0 {
			continue
		}

		if _, err := fmt.Fprintf(w, "%s%s: {\n", pad, name); err != nil {
			return err
		}

		if err := child.format(w, indent, depth+1); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%s}\n", pad); err != nil {
			return err
		}
	}

	return nil
}

// validKey reports whether s is a well-formed key.
func validKey(s string) bool {
	if !startsWith(s, isSectionKeyChar) {
		return false
	}

	c := newCursor(s)
	c.scanWhile(isKeyChar)

	return c.rest() == ""
}
