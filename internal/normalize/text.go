package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// UpperCollapse uppercases, collapses whitespace runs, and trims the input.
// Returns nil when the result is empty, since empty descriptions are stored
// as nulls rather than blank strings.
func UpperCollapse(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ToUpper(s)
	s = multiSpace.ReplaceAllString(s, " ")
	return &s
}
