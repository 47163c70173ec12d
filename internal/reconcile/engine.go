// Package reconcile appends enriched billing records to the externally
// owned analysis workbook without disturbing its prior content. The update
// is append-only and deliberately not idempotent: re-running the same input
// appends duplicate rows.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/billsync/internal/model"
	"github.com/gyeh/billsync/internal/normalize"
)

// AnalysisSheet is the literal name of the reconciliation target sheet.
const AnalysisSheet = "ANALYSIS"

var (
	// ErrMissingSheet means the workbook has no ANALYSIS sheet at all.
	ErrMissingSheet = errors.New("workbook has no " + AnalysisSheet + " sheet")
	// ErrNoHeaderFound means no row of the sheet names a canonical column.
	ErrNoHeaderFound = errors.New("no header row found in " + AnalysisSheet + " sheet")
)

// Result describes what Append changed.
type Result struct {
	HeaderRow       int
	RowsAppended    int
	AddedDescColumn bool
}

// Append locates the analysis header, widens it with PROVIDED_DESCRIPTION
// when absent, and appends one row per record below the existing content.
// Existing rows are never rewritten or reordered and other sheets in the
// workbook are left untouched. Schema failures abort before any write.
func Append(path string, records []model.EnrichedRecord) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	idx, err := f.GetSheetIndex(AnalysisSheet)
	if err != nil {
		return nil, fmt.Errorf("locate %s sheet: %w", AnalysisSheet, err)
	}
	if idx < 0 {
		return nil, ErrMissingSheet
	}

	rows, err := f.GetRows(AnalysisSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", AnalysisSheet, err)
	}

	schema, err := detectSchema(rows)
	if err != nil {
		return nil, err
	}

	res := &Result{HeaderRow: schema.HeaderRow}

	// Widen the header with the enrichment column when missing. Existing
	// rows gain an implicit empty cell at the new position; none of their
	// cells move.
	if !schema.Has(ColProvidedDesc) {
		cell, err := excelize.CoordinatesToCellName(schema.Width+1, schema.HeaderRow+1)
		if err != nil {
			return nil, fmt.Errorf("widen header: %w", err)
		}
		if err := f.SetCellValue(AnalysisSheet, cell, ColProvidedDesc); err != nil {
			return nil, fmt.Errorf("widen header: %w", err)
		}
		schema.Columns[ColProvidedDesc] = schema.Width
		schema.Width++
		res.AddedDescColumn = true
	}

	next := len(rows) // 0-based index of the first free row
	for i := range records {
		if err := writeRecord(f, schema, next+i, &records[i]); err != nil {
			return nil, err
		}
	}
	res.RowsAppended = len(records)

	if err := f.Save(); err != nil {
		return nil, fmt.Errorf("save workbook: %w", err)
	}
	return res, nil
}

// writeRecord places one record's fields at their schema-mapped columns in
// the given 0-based row. Fields without a mapped column are skipped.
func writeRecord(f *excelize.File, schema *Schema, row int, rec *model.EnrichedRecord) error {
	set := func(name string, value any) error {
		col, ok := schema.Columns[name]
		if !ok {
			return nil
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return fmt.Errorf("append row %d: %w", row+1, err)
		}
		if err := f.SetCellValue(AnalysisSheet, cell, value); err != nil {
			return fmt.Errorf("append row %d: %w", row+1, err)
		}
		return nil
	}

	if err := set(ColProvider, rec.Provider); err != nil {
		return err
	}
	if rec.Date != nil {
		if err := set(ColDate, normalize.FormatDate(*rec.Date)); err != nil {
			return err
		}
	}
	if rec.CPTCode != nil {
		if err := set(ColCPT, *rec.CPTCode); err != nil {
			return err
		}
	}
	if rec.Description != nil {
		if err := set(ColDescription, *rec.Description); err != nil {
			return err
		}
	}
	if err := set(ColCharges, normalize.CentsToDollars(rec.ChargeCents)); err != nil {
		return err
	}
	if rec.ProvidedDescription != nil {
		if err := set(ColProvidedDesc, *rec.ProvidedDescription); err != nil {
			return err
		}
	}
	return nil
}
