package normalize

import (
	"fmt"
	"strings"
	"time"
)

// Date formats used by the known bill layouts. Each layout names its format
// explicitly; there is no multi-format guessing.
const (
	// DateSlash covers MM/DD/YYYY service dates, padded or not.
	DateSlash = "1/2/2006"
	// DateGrouped covers the space-separated "MM DD YY" dates on claim forms.
	DateGrouped = "01 02 06"
)

// ParseDate parses s with the given layout format. A matched date string
// that fails to parse is a hard error; extraction never silently nulls a
// date out.
func ParseDate(s, format string) (time.Time, error) {
	t, err := time.Parse(format, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t the way the analysis sheet and export artifacts
// expect it: MM/DD/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("01/02/2006")
}
