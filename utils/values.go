package utils

import (
	"fmt"
	"strings"
)

// StringValue returns the value stored under key as a string.
// Missing keys and nil values yield an empty string; non-string scalars
// are formatted with %v so numeric answers still compare as text.
func StringValue(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// StringSlice returns the value stored under key as a list of strings.
// It accepts []string, []interface{} (as produced by encoding/json) and a
// single comma separated string. Empty elements are dropped.
func StringSlice(m map[string]interface{}, key string) []string {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}

	var out []string
	switch val := v.(type) {
	case []string:
		for _, s := range val {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range val {
			if item == nil {
				continue
			}
			s := strings.TrimSpace(fmt.Sprintf("%v", item))
			if s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}

	return out
}

// ContainsAny reports whether any of the candidates appears in values
func ContainsAny(values []string, candidates ...string) bool {
	for _, v := range values {
		for _, c := range candidates {
			if v == c {
				return true
			}
		}
	}
	return false
}

// CopyMap returns a shallow copy of m. A nil map yields an empty map.
func CopyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
