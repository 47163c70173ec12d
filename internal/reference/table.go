// Package reference loads the external procedure-code reference table and
// enriches billing records against it.
package reference

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/billsync/internal/model"
)

const (
	// SheetName is the reference workbook sheet holding the code table.
	SheetName = "CPT DESC"

	codeColumn = "Procedure Code"
	descColumn = "Description"
)

// Load reads the reference workbook into a code→description table. The
// sheet's header row must name the Procedure Code and Description columns;
// their order does not matter. Rows with a blank code are ignored, and
// duplicate codes keep the last value seen (duplicates are undefined
// behavior, not validated).
func Load(path string) (model.ReferenceTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open reference workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reference sheet %q is empty", SheetName)
	}

	codeIdx, descIdx := -1, -1
	for i, cell := range rows[0] {
		switch strings.TrimSpace(cell) {
		case codeColumn:
			codeIdx = i
		case descColumn:
			descIdx = i
		}
	}
	if codeIdx < 0 || descIdx < 0 {
		return nil, fmt.Errorf("reference sheet %q needs %q and %q columns", SheetName, codeColumn, descColumn)
	}

	table := make(model.ReferenceTable)
	for _, row := range rows[1:] {
		code := strings.TrimSpace(cellVal(row, codeIdx))
		if code == "" {
			continue
		}
		table[code] = cellVal(row, descIdx)
	}
	return table, nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
