// Package formatter renders stored response transcripts into
// downloadable documents.
package formatter

import (
	"fmt"
	"time"

	"github.com/jazmy/formchat/internal/entity"
)

// Item is one question/answer pair of a transcript, in prompt order.
type Item struct {
	Variable string
	Question string
	Answer   string
}

// Document is a render-ready response transcript. Output holds the
// generated final document when the form has one.
type Document struct {
	Title       string
	ResponseID  int64
	SubmittedAt time.Time
	Items       []Item
	Output      string
}

// outputHeading labels the generated-output section in rendered exports.
const outputHeading = "Generated Output"

type Formatter interface {
	Format(doc Document) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	case entity.FormatCSV:
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
