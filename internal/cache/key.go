package cache

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// KeySeparator sits between a namespace and its parameter encoding.
const KeySeparator = ":"

// Params is the parameter bag a cached call is keyed on. Values should be scalars.
type Params map[string]any

// BuildKey canonicalizes namespace and params into a deterministic key.
//
// Parameter names are sorted and each value is JSON-encoded, so key identity does not
// depend on map iteration order and the string "10" never collides with the number 10.
// The result looks like `move:cost:{"distance":20,"volume":10}`.
func BuildKey(namespace string, params Params) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(namespace)
	b.WriteString(KeySeparator)
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(encodeScalar(name))
		b.WriteByte(':')
		b.WriteString(encodeScalar(params[name]))
	}
	b.WriteByte('}')

	return b.String()
}

// JoinKey builds a readable key from positional segments, e.g. JoinKey("projetos", "id", 7).
// Use it for namespaces whose invalidation patterns address individual segments.
func JoinKey(namespace string, segments ...any) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, namespace)
	for _, s := range segments {
		parts = append(parts, fmt.Sprint(s))
	}
	return strings.Join(parts, KeySeparator)
}

// encodeScalar renders v as compact JSON. Values JSON rejects, such as NaN or
// channels, fall back to an unquoted type(value) form that no JSON scalar can produce.
func encodeScalar(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T(%v)", v, v)
	}
	return string(data)
}
