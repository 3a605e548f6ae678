package utils

import "strings"

// StripCodeFences removes markdown ```json fences a model likes to wrap its
// output in.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ExtractJSONObject returns the first {...} substring of s, matching the
// outermost braces. Used as the best-effort recovery when a model response is
// not directly parseable.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}
