package extract

import (
	"fmt"
	"regexp"

	"github.com/gyeh/billsync/internal/model"
	"github.com/gyeh/billsync/internal/normalize"
	"github.com/gyeh/billsync/internal/pagetext"
)

// The two-section invoice + claim form layout has a fixed shape: the
// invoice detail lives on the fourth page, the health claim form fills the
// remainder of the document.
const (
	invoicePageIndex = 3
	claimStartIndex  = 4
)

var (
	invoiceDatePattern = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	noShowPattern      = regexp.MustCompile(`[A-Za-z\s.\-]+Appt\. No Show Fee`)
	amountPattern      = regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\b`)

	claimDatePattern = regexp.MustCompile(`\d{2} \d{2} \d{2}`)
	// claimLinePattern matches one service line: grouped date, any text, a
	// 4-5 digit optionally letter-prefixed code, any text, integer charge.
	claimLinePattern = regexp.MustCompile(`(\d{2} \d{2} \d{2}).+?(\b[A-Z]?\d{4,5}\b).+?(\d+)`)
)

// InvoiceClaim extracts billing records from a two-section document: an
// invoice page of no-show fees followed by claim form pages of coded
// service lines.
func InvoiceClaim(pages []pagetext.Page) ([]model.BillingRecord, error) {
	if len(pages) <= invoicePageIndex {
		return nil, &ParseError{
			Layout: "invoice_claim",
			Err:    fmt.Errorf("document has %d pages, invoice section expects page %d", len(pages), invoicePageIndex+1),
		}
	}
	provider := providerName(pages)

	invoice := pages[invoicePageIndex]
	records, err := invoiceSection(provider, invoice.Text)
	if err != nil {
		return nil, &ParseError{Layout: "invoice_claim", Page: invoice.Page, Err: err}
	}

	for _, p := range pages[claimStartIndex:] {
		claim, err := claimSection(provider, p.Text)
		if err != nil {
			return nil, &ParseError{Layout: "invoice_claim", Page: p.Page, Err: err}
		}
		records = append(records, claim...)
	}
	return records, nil
}

// invoiceSection pairs the i-th no-show description with the i-th date and
// i-th monetary token. The pairing is a length-checked zip: too few dates
// or amounts for the descriptions found is a hard failure, never a silent
// truncation. The last monetary token on the page is the running balance
// and replaces the charge of the last description-derived record only.
// CPT codes do not appear in this section.
func invoiceSection(provider, text string) ([]model.BillingRecord, error) {
	dates := invoiceDatePattern.FindAllString(text, -1)
	descriptions := noShowPattern.FindAllString(text, -1)
	amounts := amountPattern.FindAllString(text, -1)

	if len(descriptions) == 0 {
		return nil, nil
	}
	if len(dates) < len(descriptions) || len(amounts) < len(descriptions) {
		return nil, fmt.Errorf("invoice tokens misaligned: %d descriptions, %d dates, %d amounts",
			len(descriptions), len(dates), len(amounts))
	}

	balance, err := normalize.ParseCharge(amounts[len(amounts)-1])
	if err != nil {
		return nil, err
	}

	var records []model.BillingRecord
	for i, desc := range descriptions {
		date, err := normalize.ParseDate(dates[i], normalize.DateSlash)
		if err != nil {
			return nil, err
		}

		charge, err := normalize.ParseCharge(amounts[i])
		if err != nil {
			return nil, err
		}
		if i == len(descriptions)-1 {
			charge = balance
		}

		records = append(records, model.BillingRecord{
			Provider:    provider,
			Date:        &date,
			Description: normalize.UpperCollapse(desc),
			ChargeCents: charge,
		})
	}
	return records, nil
}

// claimSection extracts coded service lines from one claim form page. The
// grouped dates on the page establish the service date range; the range is
// validated but not stored on the records. Descriptions do not appear in
// this section.
func claimSection(provider, text string) ([]model.BillingRecord, error) {
	dates := claimDatePattern.FindAllString(text, -1)
	if len(dates) > 0 {
		if _, err := normalize.ParseDate(dates[0], normalize.DateGrouped); err != nil {
			return nil, fmt.Errorf("service range from-date: %w", err)
		}
	}
	if len(dates) > 1 {
		if _, err := normalize.ParseDate(dates[len(dates)-1], normalize.DateGrouped); err != nil {
			return nil, fmt.Errorf("service range to-date: %w", err)
		}
	}

	var records []model.BillingRecord
	for _, m := range claimLinePattern.FindAllStringSubmatch(text, -1) {
		date, err := normalize.ParseDate(m[1], normalize.DateGrouped)
		if err != nil {
			return nil, err
		}

		charge, err := normalize.ParseCharge(m[3])
		if err != nil {
			return nil, err
		}

		code := m[2]
		records = append(records, model.BillingRecord{
			Provider:    provider,
			Date:        &date,
			CPTCode:     &code,
			ChargeCents: charge,
		})
	}
	return records, nil
}
