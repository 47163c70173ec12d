package model

import "time"

// RunSummary captures metrics from a single pipeline run.
type RunSummary struct {
	BatchID           string
	DocsProcessed     int
	DocsSkipped       int
	DocsFailed        int
	RecordsExtracted  int
	RowsAppended      int
	AddedDescColumn   bool // PROVIDED_DESCRIPTION was introduced this run
	DurationExtract   time.Duration
	DurationReconcile time.Duration
	DurationTotal     time.Duration
}
