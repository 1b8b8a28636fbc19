package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/jazmy/formchat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleDoc = Document{
	Title:       "Event Feedback",
	ResponseID:  42,
	SubmittedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	Items: []Item{
		{Variable: "highlights", Question: "What went well?", Answer: "Great speakers."},
		{Variable: "improvements", Question: "What could improve?", Answer: "Shorter talks, more breaks."},
	},
	Output: "Overall positive feedback with minor scheduling complaints.",
}

func TestFactoryCoversAllFormats(t *testing.T) {
	factory := NewFactory()
	for _, format := range []entity.ResultFormat{
		entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX, entity.FormatCSV,
	} {
		f, err := factory.Create(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, f.ContentType())
		assert.NotEmpty(t, f.FileExtension())
	}

	_, err := factory.Create(entity.ResultFormat("xlsx"))
	assert.Error(t, err)
}

func TestMarkdownFormat(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleDoc)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# Event Feedback")
	assert.Contains(t, text, "## What went well?")
	assert.Contains(t, text, "Great speakers.")
	assert.Contains(t, text, "## Generated Output")
}

func TestMarkdownFormatNoOutput(t *testing.T) {
	doc := sampleDoc
	doc.Output = ""

	out, err := NewMarkdownFormatter().Format(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Generated Output")
}

func TestCSVFormat(t *testing.T) {
	out, err := NewCSVFormatter().Format(sampleDoc)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Response_ID,Submission_Date,highlights,improvements,output")
	assert.Contains(t, text, "42,2025-03-14T09:30:00Z,Great speakers.")
	// Commas inside a field must be quoted.
	assert.Contains(t, text, `"Shorter talks, more breaks."`)
}

func TestCSVFormatOmitsOutputColumnWhenEmpty(t *testing.T) {
	doc := sampleDoc
	doc.Output = ""

	out, err := NewCSVFormatter().Format(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Response_ID,Submission_Date,highlights,improvements\n")
}

func TestCSVFormatSheet(t *testing.T) {
	second := Document{
		ResponseID:  43,
		SubmittedAt: time.Date(2025, 3, 15, 11, 0, 0, 0, time.UTC),
		Items: []Item{
			{Variable: "improvements", Question: "What could improve?", Answer: "Better coffee."},
		},
	}

	out, err := NewCSVFormatter().FormatSheet(Sheet{
		Columns: []string{"highlights", "improvements"},
		Rows:    []Document{sampleDoc, second},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Response_ID,Submission_Date,highlights,improvements,output", lines[0])
	assert.Contains(t, lines[1], "42,2025-03-14T09:30:00Z,Great speakers.")
	// Unanswered columns and missing output render as blank cells under
	// the shared header.
	assert.Equal(t, "43,2025-03-15T11:00:00Z,,Better coffee.,", lines[2])
}

func TestPDFFormatProducesDocument(t *testing.T) {
	out, err := NewPDFFormatter().Format(sampleDoc)
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}
