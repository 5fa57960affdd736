package export

import (
	"encoding/csv"
	"io"

	"github.com/mamadbah2/productreport/internal/domain/models"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// WriteCSV serialises a report's columns, rows and aggregate as CSV.
func WriteCSV(w io.Writer, report models.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	for _, record := range records(report) {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// records lays out header, rows and an optional trailing aggregate record.
func records(report models.Report) [][]string {
	header := make([]string, len(report.Columns))
	for i, column := range report.Columns {
		header[i] = column.Title
	}

	out := make([][]string, 0, len(report.Rows)+2)
	out = append(out, header)
	for _, row := range report.Rows {
		out = append(out, row.Cells)
	}
	if report.Aggregate != nil {
		out = append(out, []string{report.Aggregate.Label, report.Aggregate.Value()})
	}
	return out
}
