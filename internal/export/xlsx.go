package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/productreport/internal/domain/models"
)

const defaultSheet = "Sheet1"

// WriteXLSX writes the report as a single-sheet workbook named after its category.
func WriteXLSX(w io.Writer, report models.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := string(report.Category)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for r, record := range records(report) {
		for c, value := range record {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
