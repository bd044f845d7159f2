// Package strings provides string normalization utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  Financial information issue ", "Financial information issue", ""})
//	// Returns: []string{"Financial information issue"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// NormalizeKey lowercases s, trims it and collapses internal runs of
// whitespace to a single space. Used for free-text lookups.
//
// Example:
//
//	NormalizeKey("  Korangi   Creek ")
//	// Returns: "korangi creek"
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
