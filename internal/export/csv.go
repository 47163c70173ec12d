// Package export writes the enriched record set out as download/archival
// artifacts: a delimited CSV, a parquet copy, and the services workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gyeh/billsync/internal/model"
	"github.com/gyeh/billsync/internal/normalize"
)

// columns defines the CSV header row, matching the analysis sheet's
// canonical column set.
var columns = []string{"PROVIDER", "DATE", "CPT", "DESCRIPTION", "CHARGES", "PROVIDED_DESCRIPTION"}

// Writer wraps csv.Writer for exporting enriched records.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts records to CSV rows and writes them, one row per
// record.
func (w *Writer) WriteRecords(records []model.EnrichedRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// recordToRow converts one record to a CSV row. Nil fields become empty
// cells.
func recordToRow(r *model.EnrichedRecord) []string {
	row := make([]string, len(columns))
	row[0] = r.Provider
	if r.Date != nil {
		row[1] = normalize.FormatDate(*r.Date)
	}
	if r.CPTCode != nil {
		row[2] = *r.CPTCode
	}
	if r.Description != nil {
		row[3] = *r.Description
	}
	row[4] = normalize.FormatCents(r.ChargeCents)
	if r.ProvidedDescription != nil {
		row[5] = *r.ProvidedDescription
	}
	return row
}

// WriteCSV writes the full artifact to path.
func WriteCSV(path string, records []model.EnrichedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteRecords(records); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
