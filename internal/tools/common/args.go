package common

import "strings"

// ParseCommaList splits a comma-separated string into trimmed, non-empty
// elements.
func ParseCommaList(input string) []string {
	if input == "" {
		return []string{}
	}

	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// StringArg reads an optional string argument, returning the fallback when
// absent or empty.
func StringArg(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// NumberArg reads an optional numeric argument. JSON numbers arrive as
// float64; non-positive and absent values return the fallback.
func NumberArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok && v > 0 {
		return int(v)
	}
	return fallback
}

// BoolArg reads an optional boolean argument.
func BoolArg(args map[string]interface{}, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}
