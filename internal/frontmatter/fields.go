package frontmatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Fields is an insertion-ordered frontmatter mapping.
//
// Nested mappings decode to *Fields and sequences to []any, so key order
// survives a parse/serialize cycle. The zero value is not usable; use NewFields.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields returns an empty field set.
func NewFields() *Fields {
	return &Fields{values: map[string]any{}}
}

// FieldsFromMap builds Fields from a plain map, ordering keys lexically.
func FieldsFromMap(m map[string]any) *Fields {
	f := NewFields()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f.Set(k, m[k])
	}
	return f
}

// Len reports the number of keys. A nil receiver has none.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.keys...)
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[key]
	return v, ok
}

// String returns the value under key formatted as text, or "" when the key
// is missing or holds a falsy value (nil, "", false, 0).
func (f *Fields) String(key string) string {
	v, ok := f.Get(key)
	if !ok {
		return ""
	}
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case bool:
		if !vv {
			return ""
		}
	case int:
		if vv == 0 {
			return ""
		}
	case float64:
		if vv == 0 {
			return ""
		}
	}
	return fmt.Sprint(v)
}

// Set stores value under key. Existing keys keep their position.
func (f *Fields) Set(key string, value any) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Delete removes key if present.
func (f *Fields) Delete(key string) {
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy; nested Fields and slices are copied too.
func (f *Fields) Clone() *Fields {
	out := NewFields()
	if f == nil {
		return out
	}
	for _, k := range f.keys {
		out.Set(k, cloneValue(f.values[k]))
	}
	return out
}

// Map converts the field set into plain nested maps.
func (f *Fields) Map() map[string]any {
	out := make(map[string]any, f.Len())
	if f == nil {
		return out
	}
	for _, k := range f.keys {
		out[k] = plainValue(f.values[k])
	}
	return out
}

// UnmarshalYAML decodes a YAML mapping node keeping key order.
func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := decodeNode(node)
	if err != nil {
		return err
	}
	switch v := decoded.(type) {
	case *Fields:
		*f = *v
	case nil:
		*f = *NewFields()
	default:
		return fmt.Errorf("frontmatter must be a mapping, got %T", decoded)
	}
	return nil
}

// MarshalYAML emits the fields as an ordered mapping node.
func (f *Fields) MarshalYAML() (any, error) {
	return toNode(f)
}

// MarshalJSON emits the fields as a JSON object in key order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseFields decodes raw YAML frontmatter (without --- delimiters).
func ParseFields(raw []byte) (*Fields, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return NewFields(), nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	fields := NewFields()
	if err := fields.UnmarshalYAML(&node); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeNode(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeNode(node.Content[0])
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.MappingNode:
		out := NewFields()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, errors.New("frontmatter keys must be scalars")
			}
			val, err := decodeNode(valNode)
			if err != nil {
				return nil, err
			}
			out.Set(keyNode.Value, val)
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			val, err := decodeNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d", node.Kind)
	}
}

func toNode(f *Fields) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range f.Keys() {
		var val yaml.Node
		if err := val.Encode(f.values[k]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &val)
	}
	return n, nil
}

func cloneValue(v any) any {
	switch vv := v.(type) {
	case *Fields:
		return vv.Clone()
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, item := range vv {
			out[k] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func plainValue(v any) any {
	switch vv := v.(type) {
	case *Fields:
		return vv.Map()
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
