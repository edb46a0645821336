package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringValue(t *testing.T) {
	m := map[string]interface{}{
		"s":   "public",
		"n":   float64(3),
		"b":   true,
		"nil": nil,
	}

	assert.Equal(t, "public", StringValue(m, "s"))
	assert.Equal(t, "3", StringValue(m, "n"))
	assert.Equal(t, "true", StringValue(m, "b"))
	assert.Equal(t, "", StringValue(m, "nil"))
	assert.Equal(t, "", StringValue(m, "missing"))
	assert.Equal(t, "", StringValue(nil, "s"))
}

func TestStringSlice(t *testing.T) {
	m := map[string]interface{}{
		"strings":    []string{"medical", " ", "financial"},
		"interfaces": []interface{}{"biometric", nil, "", "criminal"},
		"csv":        "medical, financial,,",
		"number":     42,
	}

	assert.Equal(t, []string{"medical", "financial"}, StringSlice(m, "strings"))
	assert.Equal(t, []string{"biometric", "criminal"}, StringSlice(m, "interfaces"))
	assert.Equal(t, []string{"medical", "financial"}, StringSlice(m, "csv"))
	assert.Nil(t, StringSlice(m, "number"))
	assert.Nil(t, StringSlice(m, "missing"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny([]string{"a", "b"}, "x", "b"))
	assert.False(t, ContainsAny([]string{"a", "b"}, "x"))
	assert.False(t, ContainsAny(nil, "x"))
}

func TestCopyMap(t *testing.T) {
	src := map[string]interface{}{"a": 1}
	dst := CopyMap(src)
	dst["b"] = 2

	assert.Len(t, src, 1)
	assert.Equal(t, 1, dst["a"])
	assert.NotNil(t, CopyMap(nil))
}
