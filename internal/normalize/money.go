package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCharge converts a monetary token to integer cents, stripping
// thousands separators first. Uses math.Round to avoid truncation bias.
// Negative amounts are rejected.
func ParseCharge(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("parse charge %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative charge %q", s)
	}
	return int64(math.Round(v * 100)), nil
}

// FormatCents renders cents as a two-decimal dollar string, e.g. "150.00".
func FormatCents(c int64) string {
	return strconv.FormatFloat(float64(c)/100, 'f', 2, 64)
}

// CentsToDollars returns the dollar value for numeric spreadsheet cells.
func CentsToDollars(c int64) float64 {
	return float64(c) / 100
}
