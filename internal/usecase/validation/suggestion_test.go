package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSuggestion(t *testing.T) {
	tests := []struct {
		name     string
		feedback string
		want     string
	}{
		{
			name:     "quoted suggestion",
			feedback: "Your answer could be more specific. Here's a suggestion:\n1. \"The quarterly revenue grew 12%.\"\n",
			want:     "The quarterly revenue grew 12%.",
		},
		{
			name:     "unquoted suggestion",
			feedback: "Consider adding detail.\n1. Add a specific example.\n",
			want:     "Add a specific example.",
		},
		{
			name:     "indented enumerated line",
			feedback: "Feedback first.\n   1. \"Try this answer instead.\"",
			want:     "Try this answer instead.",
		},
		{
			name:     "no enumerated line",
			feedback: "Your answer is too short. Please elaborate.",
			want:     "",
		},
		{
			name:     "unterminated quote falls back to line remainder",
			feedback: "Suggestion:\n1. \"Unbalanced quote here",
			want:     `"Unbalanced quote here`,
		},
		{
			name:     "first enumerated line wins",
			feedback: "Two options:\n1. First suggestion.\n1. Second suggestion.",
			want:     "First suggestion.",
		},
		{
			name:     "empty feedback",
			feedback: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSuggestion(tt.feedback))
		})
	}
}
