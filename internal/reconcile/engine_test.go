package reconcile

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/billsync/internal/model"
)

func strptr(s string) *string { return &s }

func timeptr(t time.Time) *time.Time { return &t }

// writeWorkbook builds a workbook with a marker on the default sheet and
// the given rows on the ANALYSIS sheet.
func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetCellValue(f.GetSheetName(0), "A1", "untouched"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	if _, err := f.NewSheet(AnalysisSheet); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	for i, row := range rows {
		for j, val := range row {
			if val == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			if err := f.SetCellValue(AnalysisSheet, cell, val); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "analysis.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", sheet, err)
	}
	return rows
}

func cell(rows [][]string, row, col int) string {
	if row < len(rows) && col < len(rows[row]) {
		return rows[row][col]
	}
	return ""
}

func TestAppend(t *testing.T) {
	// Title and blank rows above a mixed-case header, one existing data row.
	path := writeWorkbook(t, [][]any{
		{"Quarterly Billing Analysis"},
		nil,
		{"Provider", "Date", "CPT", "Description", "Charges"},
		{"Old Clinic", "01/01/2024", "90000", "OLD ITEM", "100"},
	})

	records := []model.EnrichedRecord{
		{
			BillingRecord: model.BillingRecord{
				Provider:    "Test Clinic",
				Date:        timeptr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
				CPTCode:     strptr("99213"),
				Description: strptr("OFFICE VISIT"),
				ChargeCents: 15075,
			},
			ProvidedDescription: strptr("Office visit, established patient"),
		},
		{
			BillingRecord: model.BillingRecord{
				Provider:    "Test Clinic",
				ChargeCents: 5000,
			},
		},
	}

	res, err := Append(path, records)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if res.HeaderRow != 2 {
		t.Errorf("HeaderRow = %d, want 2", res.HeaderRow)
	}
	if res.RowsAppended != 2 {
		t.Errorf("RowsAppended = %d, want 2", res.RowsAppended)
	}
	if !res.AddedDescColumn {
		t.Error("expected header to be widened")
	}

	rows := readSheet(t, path, AnalysisSheet)

	// Header gained the enrichment column at the end.
	if got := cell(rows, 2, 5); got != ColProvidedDesc {
		t.Errorf("widened header cell = %q, want %q", got, ColProvidedDesc)
	}

	// Prior content is untouched.
	if got := cell(rows, 0, 0); got != "Quarterly Billing Analysis" {
		t.Errorf("title row = %q", got)
	}
	if got := cell(rows, 3, 0); got != "Old Clinic" {
		t.Errorf("existing row provider = %q", got)
	}
	if got := cell(rows, 3, 4); got != "100" {
		t.Errorf("existing row charges = %q", got)
	}

	// New rows start right below the existing content.
	if got := cell(rows, 4, 0); got != "Test Clinic" {
		t.Errorf("appended provider = %q", got)
	}
	if got := cell(rows, 4, 1); got != "01/15/2024" {
		t.Errorf("appended date = %q", got)
	}
	if got := cell(rows, 4, 2); got != "99213" {
		t.Errorf("appended cpt = %q", got)
	}
	if got := cell(rows, 4, 3); got != "OFFICE VISIT" {
		t.Errorf("appended description = %q", got)
	}
	if got := cell(rows, 4, 4); got != "150.75" {
		t.Errorf("appended charges = %q", got)
	}
	if got := cell(rows, 4, 5); got != "Office visit, established patient" {
		t.Errorf("appended provided description = %q", got)
	}

	// Second record has only provider and charge; the rest stays blank.
	if got := cell(rows, 5, 0); got != "Test Clinic" {
		t.Errorf("second appended provider = %q", got)
	}
	if got := cell(rows, 5, 1); got != "" {
		t.Errorf("second appended date = %q, want empty", got)
	}
	if got := cell(rows, 5, 4); got != "50" {
		t.Errorf("second appended charges = %q", got)
	}

	// The other sheet keeps its marker.
	other := readSheet(t, path, "Sheet1")
	if got := cell(other, 0, 0); got != "untouched" {
		t.Errorf("Sheet1 A1 = %q", got)
	}
}

func TestAppend_ExistingDescColumn(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"PROVIDER", "CHARGES", "PROVIDED_DESCRIPTION"},
	})

	records := []model.EnrichedRecord{{
		BillingRecord:       model.BillingRecord{Provider: "Clinic", ChargeCents: 100},
		ProvidedDescription: strptr("desc"),
	}}

	res, err := Append(path, records)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if res.AddedDescColumn {
		t.Error("header already had the column, no widening expected")
	}

	rows := readSheet(t, path, AnalysisSheet)
	if got := cell(rows, 1, 2); got != "desc" {
		t.Errorf("provided description cell = %q", got)
	}
}

func TestAppend_SubsetHeader(t *testing.T) {
	// Fields without a mapped column are dropped, not appended elsewhere.
	path := writeWorkbook(t, [][]any{
		{"DATE", "CHARGES"},
	})

	records := []model.EnrichedRecord{{
		BillingRecord: model.BillingRecord{
			Provider:    "Clinic",
			Date:        timeptr(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
			ChargeCents: 2500,
		},
	}}

	if _, err := Append(path, records); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readSheet(t, path, AnalysisSheet)
	if got := cell(rows, 1, 0); got != "03/05/2024" {
		t.Errorf("date cell = %q", got)
	}
	if got := cell(rows, 1, 1); got != "25" {
		t.Errorf("charges cell = %q", got)
	}
}

func TestAppend_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	_, err := Append(path, nil)
	if !errors.Is(err, ErrMissingSheet) {
		t.Fatalf("expected ErrMissingSheet, got %v", err)
	}
}

func TestAppend_NoHeader(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"some notes"},
		{"more notes", "again"},
	})

	_, err := Append(path, nil)
	if !errors.Is(err, ErrNoHeaderFound) {
		t.Fatalf("expected ErrNoHeaderFound, got %v", err)
	}
}

func TestDetectSchema(t *testing.T) {
	rows := [][]string{
		{"title"},
		{},
		{"Provider", "ignored", "charges"},
	}
	schema, err := detectSchema(rows)
	if err != nil {
		t.Fatalf("detectSchema: %v", err)
	}
	if schema.HeaderRow != 2 {
		t.Errorf("HeaderRow = %d, want 2", schema.HeaderRow)
	}
	if schema.Width != 3 {
		t.Errorf("Width = %d, want 3", schema.Width)
	}
	if schema.Columns[ColProvider] != 0 || schema.Columns[ColCharges] != 2 {
		t.Errorf("columns = %v", schema.Columns)
	}
	if schema.Has(ColDate) {
		t.Error("DATE should not be mapped")
	}
}

func TestDetectSchema_ProvidedDescAlone(t *testing.T) {
	// A row naming only the enrichment column is not a header.
	_, err := detectSchema([][]string{{"PROVIDED_DESCRIPTION"}})
	if !errors.Is(err, ErrNoHeaderFound) {
		t.Fatalf("expected ErrNoHeaderFound, got %v", err)
	}
}
