package export

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/billsync/internal/model"
	"github.com/gyeh/billsync/internal/normalize"
)

// ArchiveRow mirrors the parquet schema for one enriched record. Dates are
// stored preformatted; charges stay integer cents.
type ArchiveRow struct {
	Provider            string  `parquet:"provider"`
	Date                *string `parquet:"date,optional"`
	CPTCode             *string `parquet:"cpt_code,optional"`
	Description         *string `parquet:"description,optional"`
	ChargeCents         int64   `parquet:"charge_cents"`
	ProvidedDescription *string `parquet:"provided_description,optional"`
}

// toArchiveRow converts an enriched record to its parquet shape.
func toArchiveRow(r *model.EnrichedRecord) ArchiveRow {
	row := ArchiveRow{
		Provider:            r.Provider,
		CPTCode:             r.CPTCode,
		Description:         r.Description,
		ChargeCents:         r.ChargeCents,
		ProvidedDescription: r.ProvidedDescription,
	}
	if r.Date != nil {
		d := normalize.FormatDate(*r.Date)
		row.Date = &d
	}
	return row
}

// WriteParquet writes the enriched record set as a parquet file for
// archival and downstream analytics.
func WriteParquet(path string, records []model.EnrichedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows := make([]ArchiveRow, len(records))
	for i := range records {
		rows[i] = toArchiveRow(&records[i])
	}

	w := parquet.NewGenericWriter[ArchiveRow](f)
	if _, err := w.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
