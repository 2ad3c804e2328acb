package frontmatter

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Serialize renders fields as YAML lines (without delimiters or a trailing
// newline).
//
// Scalars are JSON encoded, which is valid YAML and keeps strings quoted.
// Nested mappings are indented two spaces per level; sequence items use
// "- " markers. Empty collections render in flow style ({} and []).
func Serialize(fields *Fields) string {
	return strings.Join(fieldLines(fields, 0), "\n")
}

func fieldLines(fields *Fields, indent int) []string {
	pad := strings.Repeat("  ", indent)
	lines := make([]string, 0, fields.Len())
	for _, key := range fields.Keys() {
		value, _ := fields.Get(key)
		switch v := normalizeValue(value).(type) {
		case []any:
			if len(v) == 0 {
				lines = append(lines, pad+key+": []")
				continue
			}
			lines = append(lines, pad+key+":")
			for _, item := range v {
				lines = append(lines, itemLines(item, pad)...)
			}
		case *Fields:
			if v.Len() == 0 {
				lines = append(lines, pad+key+": {}")
				continue
			}
			lines = append(lines, pad+key+":")
			lines = append(lines, fieldLines(v, indent+1)...)
		default:
			lines = append(lines, pad+key+": "+encodeScalar(v))
		}
	}
	return lines
}

func itemLines(item any, pad string) []string {
	nested, ok := normalizeValue(item).(*Fields)
	if !ok || nested.Len() == 0 {
		return []string{pad + "  - " + encodeScalar(normalizeValue(item))}
	}
	inner := fieldLines(nested, 0)
	out := make([]string, 0, len(inner))
	out = append(out, pad+"  - "+inner[0])
	for _, line := range inner[1:] {
		out = append(out, pad+"    "+line)
	}
	return out
}

func normalizeValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return FieldsFromMap(vv)
	case map[any]any:
		converted := make(map[string]any, len(vv))
		for k, val := range vv {
			converted[encodeKey(k)] = val
		}
		return FieldsFromMap(converted)
	case []string:
		out := make([]any, len(vv))
		for i, s := range vv {
			out[i] = s
		}
		return out
	case Fields:
		return &vv
	default:
		return v
	}
}

func encodeKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return strings.Trim(encodeScalar(k), `"`)
}

// encodeScalar JSON-encodes v without HTML escaping. Values JSON cannot
// represent (NaN, channels, ...) encode as null.
func encodeScalar(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
