package validation

import "strings"

// ExtractSuggestion pulls the suggested replacement answer out of
// rejection feedback. The convention is the first line beginning with
// "1.": if the line carries a double-quoted substring that substring is
// the suggestion, otherwise the remainder of the line after the marker.
// Returns "" when the feedback does not follow the convention.
func ExtractSuggestion(feedback string) string {
	for _, line := range strings.Split(feedback, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "1.") {
			continue
		}

		if start := strings.Index(trimmed, `"`); start >= 0 {
			rest := trimmed[start+1:]
			if end := strings.Index(rest, `"`); end >= 0 {
				return rest[:end]
			}
		}

		return strings.TrimSpace(trimmed[2:])
	}

	return ""
}
