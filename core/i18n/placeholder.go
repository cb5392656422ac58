package i18n

import (
	"fmt"
	"maps"
	"strings"
)

// ReplacePlaceholders replaces %{name} placeholders in the message with
// values from the provided map. Placeholders without a value remain
// unchanged.
//
// Example:
//
//	message: "Hello, %{name}! You have %{count} messages."
//	placeholders: M{"name": "John", "count": 5}
//	returns: "Hello, John! You have 5 messages."
func ReplacePlaceholders(message string, placeholders M) string {
	if len(placeholders) < 1 {
		return message
	}

	result := message
	for key, value := range placeholders {
		placeholder := fmt.Sprintf("%%{%s}", key)
		replacement := fmt.Sprintf("%v", value)
		result = strings.ReplaceAll(result, placeholder, replacement)
	}

	return result
}

// replacePlaceholdersMerged merges multiple placeholder maps before
// replacement, later maps winning on conflicts.
func replacePlaceholdersMerged(message string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return message
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	return ReplacePlaceholders(message, merged)
}
