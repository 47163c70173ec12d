package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gyeh/billsync/internal/normalize"
	"github.com/gyeh/billsync/internal/pagetext"
)

// ServiceLine is one row of the generic services table: a dated,
// unit-priced procedure line as it appears on itemized statements. It is a
// separate artifact from the canonical billing record and feeds the
// services workbook, not the analysis sheet.
type ServiceLine struct {
	Date           time.Time
	Description    string
	CPTCode        string
	Units          int
	UnitPriceCents int64
	TotalCents     int64
}

// servicePattern matches a dated service line: date, description free of
// digits, a 5-digit CPT code with optional -NN modifier, unit count, and
// the dollar-prefixed unit and total amounts. Requiring the code right
// after the description keeps trailing page noise out of the capture.
var servicePattern = regexp.MustCompile(
	`(\d{2}/\d{2}/\d{4})\s+([^\d]+?)\s+(\d{5}(?:-\d{2})?)\s+(\d+)\s+\$(\d+\.\d{2})\s+\$(\d+\.\d{2})`)

// Services runs the generic service-line extractor over all pages. Line
// breaks are flattened to spaces first so entries split across lines still
// match. Pages with zero bulk matches get one best-effort single match.
func Services(pages []pagetext.Page) ([]ServiceLine, error) {
	var lines []ServiceLine
	for _, p := range pages {
		text := flattenLines(p.Text)

		matches := servicePattern.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			if m := servicePattern.FindStringSubmatch(text); m != nil {
				matches = append(matches, m)
			}
		}

		for _, m := range matches {
			line, err := serviceLine(m)
			if err != nil {
				return nil, &ParseError{Layout: "services", Page: p.Page, Err: err}
			}
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func serviceLine(m []string) (ServiceLine, error) {
	date, err := normalize.ParseDate(m[1], normalize.DateSlash)
	if err != nil {
		return ServiceLine{}, err
	}

	units, err := strconv.Atoi(m[4])
	if err != nil {
		return ServiceLine{}, err
	}

	unitPrice, err := normalize.ParseCharge(m[5])
	if err != nil {
		return ServiceLine{}, err
	}

	total, err := normalize.ParseCharge(m[6])
	if err != nil {
		return ServiceLine{}, err
	}

	return ServiceLine{
		Date:           date,
		Description:    strings.TrimSpace(m[2]),
		CPTCode:        m[3],
		Units:          units,
		UnitPriceCents: unitPrice,
		TotalCents:     total,
	}, nil
}

func flattenLines(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
