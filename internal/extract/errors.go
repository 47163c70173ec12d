package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDocument marks a file whose identity matches no registered
// layout marker. Callers skip the document with a warning; other documents
// in the same run are unaffected.
var ErrUnsupportedDocument = errors.New("unsupported document")

// ParseError is a fatal extraction failure for one document: a matched line
// whose required field cannot be parsed, or section tokens that do not line
// up. No partial records are emitted for the document.
type ParseError struct {
	Layout string
	Page   int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("extract %s page %d: %s", e.Layout, e.Page, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
