package reference

import "github.com/gyeh/billsync/internal/model"

// Enrich left-joins records against the reference table by exact,
// case-sensitive CPT code. Every input record yields exactly one output
// record regardless of match outcome; a miss leaves ProvidedDescription
// nil.
func Enrich(records []model.BillingRecord, table model.ReferenceTable) []model.EnrichedRecord {
	out := make([]model.EnrichedRecord, len(records))
	for i, rec := range records {
		out[i] = model.EnrichedRecord{BillingRecord: rec}
		if rec.CPTCode == nil {
			continue
		}
		if desc, ok := table[*rec.CPTCode]; ok {
			out[i].ProvidedDescription = &desc
		}
	}
	return out
}
