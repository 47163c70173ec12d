package extract

import (
	"regexp"

	"github.com/gyeh/billsync/internal/model"
	"github.com/gyeh/billsync/internal/normalize"
	"github.com/gyeh/billsync/internal/pagetext"
)

// batchLedgerPattern matches one line item of a ledger with a leading
// 4-digit batch number (discarded): batch, date, description (non-greedy,
// terminated by the code), alphanumeric code, and an amount that may carry
// thousands separators. Unlike the plain ledger, the description always
// precedes the code.
var batchLedgerPattern = regexp.MustCompile(
	`(\d{4})\s+(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([A-Z0-9]+)\s+([\d,]+\.\d{2})`)

// BatchLedger extracts billing records from a batch-numbered ledger bill.
// Pages where bulk matching comes up empty get one best-effort single match
// against the same pattern; when it hits, that match is kept alone. The
// other layouts intentionally do not share this fallback.
func BatchLedger(pages []pagetext.Page) ([]model.BillingRecord, error) {
	provider := providerName(pages)

	var records []model.BillingRecord
	for _, p := range pages {
		matches := batchLedgerPattern.FindAllStringSubmatch(p.Text, -1)
		if len(matches) == 0 {
			if m := batchLedgerPattern.FindStringSubmatch(p.Text); m != nil {
				matches = append(matches, m)
			}
		}

		for _, m := range matches {
			rec, err := batchLedgerRecord(provider, m)
			if err != nil {
				return nil, &ParseError{Layout: "batch_ledger", Page: p.Page, Err: err}
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

func batchLedgerRecord(provider string, m []string) (model.BillingRecord, error) {
	date, err := normalize.ParseDate(m[2], normalize.DateSlash)
	if err != nil {
		return model.BillingRecord{}, err
	}

	charge, err := normalize.ParseCharge(m[5])
	if err != nil {
		return model.BillingRecord{}, err
	}

	code := m[4]
	return model.BillingRecord{
		Provider:    provider,
		Date:        &date,
		CPTCode:     &code,
		Description: normalize.UpperCollapse(m[3]),
		ChargeCents: charge,
	}, nil
}
