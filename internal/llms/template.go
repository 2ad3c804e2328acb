package llms

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

var (
	paramsPlaceholder      = regexp.MustCompile(`\{\{\s*\$params\.(\w+)\s*\}\}`)
	frontmatterPlaceholder = regexp.MustCompile(`\{\{\s*\$frontmatter\.(\w+)\s*\}\}`)
	contentMarker          = regexp.MustCompile(`<!--\s*@content\s*-->`)
)

// ExpandTemplate substitutes {{ $params.KEY }}, {{ $frontmatter.KEY }} and the
// <!-- @content --> marker. Missing keys become "". Maps and slices are inserted
// as JSON. When a value cannot be rendered the template is returned unmodified
// with ok set to false.
func ExpandTemplate(template string, params, fm map[string]any, content string) (string, bool) {
	out, err := replaceKeys(template, paramsPlaceholder, params)
	if err != nil {
		return template, false
	}
	if out, err = replaceKeys(out, frontmatterPlaceholder, fm); err != nil {
		return template, false
	}
	return contentMarker.ReplaceAllLiteralString(out, content), true
}

func replaceKeys(s string, re *regexp.Regexp, values map[string]any) (string, error) {
	var firstErr error
	out := re.ReplaceAllStringFunc(s, func(match string) string {
		key := re.FindStringSubmatch(match)[1]
		str, err := stringify(values[key])
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("placeholder %q: %w", key, err)
		}
		return str
	})
	return out, firstErr
}

func stringify(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool, int, int64, uint64, float64, fmt.Stringer:
		return fmt.Sprint(val), nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// expandOrWarn is ExpandTemplate with the fallback logged.
func expandOrWarn(template string, def DynamicRoute) string {
	out, ok := ExpandTemplate(template, def.Params, map[string]any{}, def.Content)
	if !ok {
		slog.Warn("Template substitution failed, using template unmodified",
			logfields.Component(),
			logfields.Path(def.Path))
	}
	return out
}
