// Package export renders monthly payroll reports as downloadable
// spreadsheets.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"hajeri/internal/core"
)

// MonthlyReportWorkbook builds an xlsx workbook with one row per
// contractor and a grand total row. The caller owns the file and must
// Close it.
func MonthlyReportWorkbook(report core.MonthlyReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	title := fmt.Sprintf("Attendance %04d-%02d", report.Year, int(report.Month))
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, fmt.Errorf("write title: %w", err)
	}

	headers := []string{"Contractor", "Labourers", "Days Worked", "Amount"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	row := 4
	for _, r := range report.Rows {
		if err := writeRow(f, sheet, row, r.ContractorName, r.Totals); err != nil {
			return nil, err
		}
		row++
	}
	if err := writeRow(f, sheet, row, "Total", report.Grand); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "D", 14); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, name string, t core.Totals) error {
	values := []any{name, t.LabourCount, t.Days, t.Amount}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}
	return nil
}
