// Package extract turns OCR page text into canonical billing records.
// Each supported document layout has its own extractor with layout-specific
// patterns; dispatch is by filename marker through the layout registry.
package extract

import (
	"fmt"
	"strings"

	"github.com/gyeh/billsync/internal/model"
	"github.com/gyeh/billsync/internal/pagetext"
)

// Extractor converts a bill document's page texts into billing records,
// preserving input order. Extractors are pure functions over their input.
type Extractor func(pages []pagetext.Page) ([]model.BillingRecord, error)

// extractors maps each registered layout name to its implementation.
var extractors = map[string]Extractor{
	"ledger":        Ledger,
	"batch_ledger":  BatchLedger,
	"invoice_claim": InvoiceClaim,
}

func init() {
	// The registry is a closed set; a layout without an extractor is a
	// programming error caught at load time, not at dispatch time.
	for _, l := range model.AllLayouts {
		if _, ok := extractors[l.Name]; !ok {
			panic(fmt.Sprintf("layout %q has no registered extractor", l.Name))
		}
	}
}

// ForLayout returns the extractor implementing the given layout.
func ForLayout(l model.Layout) (Extractor, error) {
	ex, ok := extractors[l.Name]
	if !ok {
		return nil, fmt.Errorf("no extractor for layout %q", l.Name)
	}
	return ex, nil
}

// ForFile selects a layout and its extractor by filename marker. There is
// no content-based detection: a name containing no registered marker yields
// ErrUnsupportedDocument.
func ForFile(name string, layouts []model.Layout) (model.Layout, Extractor, error) {
	for _, l := range layouts {
		if l.Marker != "" && strings.Contains(name, l.Marker) {
			ex, err := ForLayout(l)
			if err != nil {
				return model.Layout{}, nil, err
			}
			return l, ex, nil
		}
	}
	return model.Layout{}, nil, fmt.Errorf("%w: %s", ErrUnsupportedDocument, name)
}
