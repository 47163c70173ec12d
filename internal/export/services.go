package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/billsync/internal/extract"
	"github.com/gyeh/billsync/internal/normalize"
)

// serviceColumns is the header of the services workbook.
var serviceColumns = []string{"Date", "CPT Description", "CPT Code", "Units", "Amount Per Unit", "Total Amount"}

// ServicesWorkbook writes extracted service lines to a new single-sheet
// workbook at path, overwriting any existing file.
func ServicesWorkbook(path string, lines []extract.ServiceLine) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, name := range serviceColumns {
		if err := setCell(f, sheet, i, 0, name); err != nil {
			return err
		}
	}

	for r, line := range lines {
		values := []any{
			normalize.FormatDate(line.Date),
			line.Description,
			line.CPTCode,
			line.Units,
			"$" + normalize.FormatCents(line.UnitPriceCents),
			"$" + normalize.FormatCents(line.TotalCents),
		}
		for c, v := range values {
			if err := setCell(f, sheet, c, r+1, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save services workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("services cell (%d,%d): %w", col+1, row+1, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("services cell %s: %w", cell, err)
	}
	return nil
}
