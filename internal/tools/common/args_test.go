package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommaList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single value",
			input:    "folder1",
			expected: []string{"folder1"},
		},
		{
			name:     "multiple values",
			input:    "folder1,folder2",
			expected: []string{"folder1", "folder2"},
		},
		{
			name:     "values with spaces",
			input:    "a, b , c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only separators",
			input:    ", ,",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCommaList(tt.input))
		})
	}
}

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{"name": "report", "empty": "", "num": 3.0}

	assert.Equal(t, "report", StringArg(args, "name", "fallback"))
	assert.Equal(t, "fallback", StringArg(args, "empty", "fallback"))
	assert.Equal(t, "fallback", StringArg(args, "missing", "fallback"))
	assert.Equal(t, "fallback", StringArg(args, "num", "fallback"))
}

func TestNumberArg(t *testing.T) {
	args := map[string]interface{}{"max": 25.0, "zero": 0.0, "neg": -1.0, "str": "5"}

	assert.Equal(t, 25, NumberArg(args, "max", 10))
	assert.Equal(t, 10, NumberArg(args, "zero", 10))
	assert.Equal(t, 10, NumberArg(args, "neg", 10))
	assert.Equal(t, 10, NumberArg(args, "str", 10))
	assert.Equal(t, 10, NumberArg(args, "missing", 10))
}

func TestBoolArg(t *testing.T) {
	args := map[string]interface{}{"permanent": true, "str": "true"}

	assert.True(t, BoolArg(args, "permanent", false))
	assert.False(t, BoolArg(args, "str", false))
	assert.True(t, BoolArg(args, "missing", true))
}
