package utils

import (
	"strings"
)

// NormalizeTagName canonicalizes a free-text tag name: leading/trailing
// whitespace is trimmed, internal runs of whitespace (spaces, tabs, newlines)
// collapse to a single space, and the result is lowercased. The function is
// idempotent and returns "" for empty or whitespace-only input.
func NormalizeTagName(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// DedupeNormalized deduplicates an already-normalized name list, preserving
// the order of first occurrence.
func DedupeNormalized(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}
