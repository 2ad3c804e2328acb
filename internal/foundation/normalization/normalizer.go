// Package normalization maps loosely written option values (any case,
// stray whitespace) onto typed enums.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer maps case-insensitive names onto values of T.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string
}

// New creates a normalizer. Name appears in error and warning messages.
func New[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize returns the matching value, or the default for unknown input.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.validValues[clean(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// Parse is Normalize that rejects unknown input.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	if v, ok := n.validValues[clean(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s: %q, valid options: %s", n.name, raw, strings.Join(n.validKeys, ", "))
}

// Coerce normalizes raw for config field and explains any adjustment.
// Empty input yields the default without a warning.
func (n *Normalizer[T]) Coerce(field, raw string) (T, string) {
	if strings.TrimSpace(raw) == "" {
		return n.defaultValue, ""
	}
	key := clean(raw)
	if v, ok := n.validValues[key]; ok {
		if key != raw {
			return v, fmt.Sprintf("normalized %s from '%s' to '%s'", field, raw, key)
		}
		return v, ""
	}
	return n.defaultValue, fmt.Sprintf("unknown %s '%s', defaulting to %v", field, raw, n.defaultValue)
}

// ValidKeys returns the accepted names, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	out := make([]string, len(n.validKeys))
	copy(out, n.validKeys)
	return out
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
