package reconcile

import (
	"strings"
)

// Canonical analysis columns. Any subset, superset, or ordering of these
// may already exist in the sheet; fields whose column is absent are skipped
// on write, never synthesized.
const (
	ColProvider     = "PROVIDER"
	ColDate         = "DATE"
	ColCPT          = "CPT"
	ColDescription  = "DESCRIPTION"
	ColCharges      = "CHARGES"
	ColProvidedDesc = "PROVIDED_DESCRIPTION"
)

var canonicalColumns = []string{ColProvider, ColDate, ColCPT, ColDescription, ColCharges}

// Schema is the analysis sheet's header as found in the workbook: the
// header row position and a lookup from recognized column name to column
// index. It is computed once per reconciliation run and passed explicitly;
// nothing else in the engine assumes column order.
type Schema struct {
	HeaderRow int            // 0-based row index of the header row
	Width     int            // header width, after any widening
	Columns   map[string]int // recognized column name → 0-based index
}

// Has reports whether the named column exists in the header.
func (s *Schema) Has(name string) bool {
	_, ok := s.Columns[name]
	return ok
}

// detectSchema scans rows top to bottom for the first row that names at
// least one canonical column, case-insensitively. Rows before the header
// (titles, blanks) are ignored.
func detectSchema(rows [][]string) (*Schema, error) {
	for i, row := range rows {
		cols := headerColumns(row)
		if len(cols) == 0 {
			continue
		}
		return &Schema{HeaderRow: i, Width: len(row), Columns: cols}, nil
	}
	return nil, ErrNoHeaderFound
}

// headerColumns maps canonical column names found in the row to their cell
// index. Returns an empty map when the row names no canonical column.
func headerColumns(row []string) map[string]int {
	cols := make(map[string]int)
	for i, cell := range row {
		name := strings.ToUpper(strings.TrimSpace(cell))
		switch name {
		case ColProvider, ColDate, ColCPT, ColDescription, ColCharges, ColProvidedDesc:
			if _, seen := cols[name]; !seen {
				cols[name] = i
			}
		}
	}
	// Detection keys on the five canonical columns; a row naming only
	// PROVIDED_DESCRIPTION is not a header.
	for _, name := range canonicalColumns {
		if _, ok := cols[name]; ok {
			return cols
		}
	}
	return map[string]int{}
}
