package extract

import (
	"regexp"
	"strings"

	"github.com/gyeh/billsync/internal/model"
	"github.com/gyeh/billsync/internal/normalize"
	"github.com/gyeh/billsync/internal/pagetext"
)

// ledgerPattern matches one line item of a single-section ledger bill:
// service date, the literal "Charge" marker, free text, a CPT-like code
// (mixed letters/digits), an optional trailing description, then the unit
// price and extended charge pair. Only the extended charge is kept.
var ledgerPattern = regexp.MustCompile(
	`(\d{2}/\d{2}/\d{4})\s+Charge\s+([A-Za-z][A-Za-z,\s]*?)\s+([A-Z0-9]*[0-9]+[A-Z0-9]*)\s+([\w\s+\-.,()]+?\s+)?(\d+\.\d{2})\s+(\d+\.\d{2})`)

// Ledger extracts billing records from a single-section ledger bill.
// Every match on every page is kept, in input order.
func Ledger(pages []pagetext.Page) ([]model.BillingRecord, error) {
	provider := providerName(pages)

	var records []model.BillingRecord
	for _, p := range pages {
		for _, m := range ledgerPattern.FindAllStringSubmatch(p.Text, -1) {
			rec, err := ledgerRecord(provider, m)
			if err != nil {
				return nil, &ParseError{Layout: "ledger", Page: p.Page, Err: err}
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

func ledgerRecord(provider string, m []string) (model.BillingRecord, error) {
	date, err := normalize.ParseDate(m[1], normalize.DateSlash)
	if err != nil {
		return model.BillingRecord{}, err
	}

	// Some ledger lines carry the description after the code, some place it
	// in the free text before the code. Prefer the trailing form.
	desc := m[4]
	if strings.TrimSpace(desc) == "" {
		desc = m[2]
	}

	charge, err := normalize.ParseCharge(m[6])
	if err != nil {
		return model.BillingRecord{}, err
	}

	code := m[3]
	return model.BillingRecord{
		Provider:    provider,
		Date:        &date,
		CPTCode:     &code,
		Description: normalize.UpperCollapse(desc),
		ChargeCents: charge,
	}, nil
}
