package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(doc Document) ([]byte, error) {
	d := document.New()
	defer d.Close()

	titlePar := d.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(doc.Title)

	writeSection := func(heading, body string) {
		d.AddParagraph()

		headingPar := d.AddParagraph()
		headingPar.SetStyle("Heading2")
		headingPar.AddRun().AddText(heading)

		bodyPar := d.AddParagraph()
		bodyPar.AddRun().AddText(body)
	}

	for _, item := range doc.Items {
		writeSection(item.Question, item.Answer)
	}

	if doc.Output != "" {
		writeSection(outputHeading, doc.Output)
	}

	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
