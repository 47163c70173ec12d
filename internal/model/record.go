package model

import "time"

// UnknownProvider is the sentinel provider name used when a bill carries
// no recognizable FROM: line.
const UnknownProvider = "Unknown Hospital"

// BillingRecord is one extracted line item of a provider bill. Records are
// immutable once produced and carry no identity key: duplicates are legal
// and expected when the input repeats.
type BillingRecord struct {
	Provider    string
	Date        *time.Time
	CPTCode     *string
	Description *string
	ChargeCents int64 // non-negative, two-decimal precision held as cents
}

// EnrichedRecord is a BillingRecord plus the reference-table description
// looked up for its CPT code. A lookup miss leaves ProvidedDescription nil;
// it is never an error.
type EnrichedRecord struct {
	BillingRecord
	ProvidedDescription *string
}

// ReferenceTable maps a procedure code to its standard description.
// At most one entry per code is assumed, not enforced.
type ReferenceTable map[string]string
