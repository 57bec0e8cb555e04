package pubspec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/flow-cli/flow/internal/core"
	"github.com/goccy/go-yaml"
)

// Filename is the manifest file name at a project root.
const Filename = "pubspec.yaml"

// Status describes the outcome of loading a manifest.
type Status int

const (
	// StatusMissing means the manifest file could not be found or read.
	StatusMissing Status = iota

	// StatusMalformed means the file exists but is not a YAML mapping.
	StatusMalformed

	// StatusEmpty means the file parsed to a null document.
	StatusEmpty

	// StatusLoaded means the file parsed to a mapping.
	StatusLoaded
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusMalformed:
		return "malformed"
	case StatusEmpty:
		return "empty"
	case StatusLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Manifest is a parsed pubspec document. The zero value behaves like a
// missing manifest: every getter returns its default.
type Manifest struct {
	path   string
	data   map[string]any
	status Status
	err    error
}

// Load reads and parses the manifest at path. It never returns nil.
func Load(ctx context.Context, fs core.FileSystem, path string) *Manifest {
	m := &Manifest{path: path}

	raw, err := fs.ReadFile(ctx, path)
	if err != nil {
		m.status = StatusMissing
		m.err = fmt.Errorf("failed to read %q: %w", path, err)
		return m
	}

	data, err := Parse(raw)
	switch {
	case err != nil:
		m.status = StatusMalformed
		m.err = fmt.Errorf("failed to parse %q: %w", path, err)
	case data == nil:
		m.status = StatusEmpty
	default:
		m.status = StatusLoaded
		m.data = data
	}
	return m
}

// ErrNotMapping is returned by Parse when the document root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// Parse decodes YAML bytes into a generic mapping. A null document yields a
// nil map and no error.
func Parse(raw []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	data, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, doc)
	}
	return data, nil
}

// FromMap builds a loaded Manifest around an already decoded document.
func FromMap(data map[string]any) *Manifest {
	if data == nil {
		return &Manifest{status: StatusEmpty}
	}
	return &Manifest{data: data, status: StatusLoaded}
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string { return m.path }

// Status returns the load outcome.
func (m *Manifest) Status() Status { return m.status }

// Err returns the read or parse error, if any.
func (m *Manifest) Err() error { return m.err }

// Loaded reports whether the manifest parsed to a non-null mapping.
func (m *Manifest) Loaded() bool { return m.status == StatusLoaded }

// IsMissing reports whether the manifest file could not be read.
func (m *Manifest) IsMissing() bool {
	return m.status == StatusMissing && errors.Is(m.err, os.ErrNotExist)
}

// Has reports whether key is present at the top level, even with a null value.
func (m *Manifest) Has(key string) bool {
	if m.data == nil {
		return false
	}
	_, ok := m.data[key]
	return ok
}

// Keys returns the sorted top-level keys.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Value returns the raw value at a dot-notation path.
// Example: "flutter.uses-material-design"
func (m *Manifest) Value(field string) (any, bool) {
	if m.data == nil || field == "" {
		return nil, false
	}
	var current any = m.data
	for _, part := range strings.Split(field, ".") {
		node, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// String returns the scalar at field rendered as a string. Non-scalar and
// null values report false.
func (m *Manifest) String(field string) (string, bool) {
	v, ok := m.Value(field)
	if !ok {
		return "", false
	}
	return scalarString(v)
}

// StringOr returns the string at field or def when absent.
func (m *Manifest) StringOr(field, def string) string {
	if s, ok := m.String(field); ok && s != "" {
		return s
	}
	return def
}

// Map returns the mapping at field, or an empty map.
func (m *Manifest) Map(field string) map[string]any {
	v, ok := m.Value(field)
	if !ok {
		return map[string]any{}
	}
	node, ok := asMap(v)
	if !ok {
		return map[string]any{}
	}
	return node
}

// Constraints returns the mapping at field with each value rendered as a
// dependency constraint (see DescribeConstraint).
func (m *Manifest) Constraints(field string) map[string]string {
	section := m.Map(field)
	out := make(map[string]string, len(section))
	for name, v := range section {
		out[name] = DescribeConstraint(v)
	}
	return out
}

// DescribeConstraint renders a pubspec dependency value as a short string.
//
//	http: ^1.2.0           -> "^1.2.0"
//	foo:                   -> "any"
//	flutter: {sdk: flutter} -> "sdk: flutter"
//	bar: {git: {url: u}}   -> "git: u"
func DescribeConstraint(v any) string {
	if v == nil {
		return "any"
	}
	if s, ok := scalarString(v); ok {
		return s
	}
	node, ok := asMap(v)
	if !ok {
		return fmt.Sprint(v)
	}

	for _, source := range []string{"sdk", "path", "git", "hosted"} {
		src, ok := node[source]
		if !ok {
			continue
		}
		desc := source
		if s, ok := scalarString(src); ok {
			desc += ": " + s
		} else if inner, ok := asMap(src); ok {
			if u, ok := scalarString(inner["url"]); ok {
				desc += ": " + u
			}
		}
		if ver, ok := scalarString(node["version"]); ok {
			desc += " (" + ver + ")"
		}
		return desc
	}

	if ver, ok := scalarString(node["version"]); ok {
		return ver
	}

	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func asMap(v any) (map[string]any, bool) {
	switch node := v.(type) {
	case map[string]any:
		return node, true
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(s), true
	default:
		return "", false
	}
}
