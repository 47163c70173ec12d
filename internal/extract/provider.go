package extract

import (
	"regexp"
	"strings"

	"github.com/gyeh/billsync/internal/model"
	"github.com/gyeh/billsync/internal/pagetext"
)

var providerPattern = regexp.MustCompile(`FROM\s*:\s*([^\n]+)`)

// providerName derives the billing entity once per document, from the first
// page's text. Bills without a FROM: line get the sentinel name.
func providerName(pages []pagetext.Page) string {
	if len(pages) == 0 {
		return model.UnknownProvider
	}
	m := providerPattern.FindStringSubmatch(pages[0].Text)
	if m == nil {
		return model.UnknownProvider
	}
	return strings.TrimSpace(m[1])
}
