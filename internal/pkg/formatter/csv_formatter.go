package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

const (
	csvContentType   = "text/csv; charset=utf-8"
	csvFileExtension = ".csv"
)

// CSVFormatter renders one wide row per response: one column per answer
// variable, preceded by the response id and submission date.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (cf *CSVFormatter) Format(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Response_ID", "Submission_Date"}
	row := []string{
		strconv.FormatInt(doc.ResponseID, 10),
		doc.SubmittedAt.Format(time.RFC3339),
	}

	for _, item := range doc.Items {
		header = append(header, item.Variable)
		row = append(row, item.Answer)
	}
	if doc.Output != "" {
		header = append(header, "output")
		row = append(row, doc.Output)
	}

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.Write(row); err != nil {
		return nil, fmt.Errorf("write csv row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Sheet is a multi-response export: every row shares the form's full
// column set, blank where a response lacks an answer.
type Sheet struct {
	Columns []string
	Rows    []Document
}

// FormatSheet renders one row per response under a fixed header. The
// output column is always present so rows stay aligned across
// responses with and without generated output.
func (cf *CSVFormatter) FormatSheet(sheet Sheet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"Response_ID", "Submission_Date"}, sheet.Columns...)
	header = append(header, "output")
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, doc := range sheet.Rows {
		byVariable := make(map[string]string, len(doc.Items))
		for _, item := range doc.Items {
			byVariable[item.Variable] = item.Answer
		}

		row := make([]string, 0, len(header))
		row = append(row,
			strconv.FormatInt(doc.ResponseID, 10),
			doc.SubmittedAt.Format(time.RFC3339),
		)
		for _, col := range sheet.Columns {
			row = append(row, byVariable[col])
		}
		row = append(row, doc.Output)

		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (cf *CSVFormatter) ContentType() string {
	return csvContentType
}

func (cf *CSVFormatter) FileExtension() string {
	return csvFileExtension
}
