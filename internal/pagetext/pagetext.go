// Package pagetext reads the artifact produced by the external OCR step:
// a JSON array of page-indexed text blocks, one per scanned page, in page
// order.
package pagetext

import (
	"encoding/json"
	"fmt"
	"os"
)

// Page is one page of OCR-extracted text.
type Page struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Load reads a page-text JSON file and returns its pages in input order.
func Load(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page text: %w", err)
	}

	var pages []Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("parse page text %s: %w", path, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("page text %s contains no pages", path)
	}
	return pages, nil
}
